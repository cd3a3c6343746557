package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/pldmd/internal/bios"
	"github.com/danmuck/pldmd/internal/endpoint"
	"github.com/danmuck/pldmd/internal/pdr"
)

func (s *Server) registerRoutes(repo *pdr.Repository, biosReg *bios.Registry, endpoints *endpoint.Manager) {
	s.engine.GET("/health", healthHandler)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/pdrs", listPDRsHandler(repo))
	s.engine.GET("/pdrs/:handle", getPDRHandler(repo))
	s.engine.GET("/bios", biosSummaryHandler(biosReg))
	s.engine.GET("/bios/enum/:name", biosEnumHandler(biosReg))
	s.engine.GET("/bios/string/:name", biosStringHandler(biosReg))
	s.engine.GET("/bios/integer/:name", biosIntegerHandler(biosReg))
	s.engine.GET("/endpoints", endpointsHandler(endpoints))
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "pldmd"})
}

type pdrSummary struct {
	Handle     uint32 `json:"handle"`
	NextHandle uint32 `json:"next_handle"`
	Type       uint8  `json:"type"`
	Version    uint8  `json:"version"`
}

func listPDRsHandler(repo *pdr.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		records := repo.Records()
		out := make([]pdrSummary, 0, len(records))
		for _, rec := range records {
			out = append(out, pdrSummary{
				Handle:     rec.Handle,
				NextHandle: rec.NextHandle,
				Type:       uint8(rec.Type),
				Version:    rec.Version,
			})
		}
		c.JSON(http.StatusOK, gin.H{"pdrs": out, "count": len(out)})
	}
}

func getPDRHandler(repo *pdr.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, err := strconv.ParseUint(c.Param("handle"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid handle"})
			return
		}
		rec, ok := repo.GetByHandle(uint32(handle))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "pdr not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"handle":      rec.Handle,
			"next_handle": rec.NextHandle,
			"type":        rec.Type,
			"version":     rec.Version,
			"change_num":  rec.ChangeNum,
			"payload_len": len(rec.Payload),
		})
	}
}

func biosSummaryHandler(biosReg *bios.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		enums, strings, integers := biosReg.Count()
		c.JSON(http.StatusOK, gin.H{
			"enum_attributes":    enums,
			"string_attributes":  strings,
			"integer_attributes": integers,
		})
	}
}

func biosEnumHandler(biosReg *bios.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		attr, ok := biosReg.GetEnumAttribute(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "enum attribute not found"})
			return
		}
		c.JSON(http.StatusOK, attr)
	}
}

func biosStringHandler(biosReg *bios.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		attr, ok := biosReg.GetStringAttribute(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "string attribute not found"})
			return
		}
		c.JSON(http.StatusOK, attr)
	}
}

func biosIntegerHandler(biosReg *bios.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		attr, ok := biosReg.GetIntegerAttribute(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "integer attribute not found"})
			return
		}
		c.JSON(http.StatusOK, attr)
	}
}

func endpointsHandler(endpoints *endpoint.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if endpoints == nil {
			c.JSON(http.StatusOK, gin.H{"eids": []uint8{}, "count": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"eids": endpoints.EIDs(), "count": endpoints.EndpointCount()})
	}
}
