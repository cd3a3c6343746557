package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	logs "github.com/danmuck/smplog"

	"github.com/danmuck/pldmd/internal/admin"
	"github.com/danmuck/pldmd/internal/bios"
	"github.com/danmuck/pldmd/internal/config"
	"github.com/danmuck/pldmd/internal/correlator"
	"github.com/danmuck/pldmd/internal/dispatch"
	"github.com/danmuck/pldmd/internal/endpoint"
	"github.com/danmuck/pldmd/internal/eventpoller"
	"github.com/danmuck/pldmd/internal/logging"
	"github.com/danmuck/pldmd/internal/observability"
	"github.com/danmuck/pldmd/internal/pdr"
	"github.com/danmuck/pldmd/internal/responder"
)

func main() {
	configPath := flag.String("config", "/etc/pldmd/tunables.toml", "path to the TOML tunables file")
	flag.Parse()

	logging.ConfigureRuntime()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "pldmd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo := pdr.NewRepository()
	pdr.SeedTerminusLocator(repo, cfg.TerminusHandle, cfg.TerminusID, cfg.BmcMctpEid)
	added, err := pdr.IngestDir(repo, cfg.PDRDir)
	if err != nil {
		return fmt.Errorf("ingest pdr directory: %w", err)
	}
	logs.Infof("pldmd: loaded %d pdr descriptors from %s", added, cfg.PDRDir)

	biosReg := bios.NewRegistry()
	if err := biosReg.SetupConfig(cfg.BIOSDir); err != nil {
		return fmt.Errorf("setup bios registry: %w", err)
	}
	enums, strings, integers := biosReg.Count()
	logs.Infof("pldmd: loaded bios attributes enum=%d string=%d integer=%d", enums, strings, integers)

	corr := correlator.New(cfg.ResponseTimeOut * time.Duration(cfg.NumberOfRequestRetries+2))
	d := dispatch.New(repo)

	pollerCfg := eventpoller.Config{
		NormalTimer:            cfg.NormalRASEventTimer,
		CriticalTimer:          cfg.CriticalRASEventTimer,
		PollReqTimer:           cfg.PollReqEventTimer,
		NumberOfRequestRetries: cfg.NumberOfRequestRetries,
		ResponseTimeOut:        cfg.ResponseTimeOut,
		MaxQueueSize:           cfg.MaxQueueSize,
	}

	watcher := endpoint.NewStaticWatcher([]uint8{cfg.BmcMctpEid})
	resp := responder.New(repo)
	endpoints := endpoint.New(watcher, corr, unboundTransport{}, d, resp, pollerCfg)

	logger := observability.InitLogger("pldmd")
	adminServer := admin.New(cfg.AdminAddr, cfg.CorsOrigins, repo, biosReg, endpoints, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		endpoints.Run(ctx)
		errCh <- nil
	}()
	go func() {
		errCh <- adminServer.Run(ctx)
	}()

	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			stop()
			return err
		}
	}
	logs.Infof("pldmd: shutdown complete")
	return nil
}

// unboundTransport is the seam a real MCTP send binding fills in; MCTP
// transport itself is out of this responder's scope, so this logs what
// would have gone out instead of touching a socket.
type unboundTransport struct{}

func (unboundTransport) Send(eid uint8, payload []byte) error {
	logs.Warnf("pldmd: no MCTP transport bound, dropping %d byte request to eid=%d", len(payload), eid)
	return nil
}
