package pdr

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logs "github.com/danmuck/smplog"
)

// stateEntryJSON is the on-disk shape of one possible-states entry inside a
// sensorPDRs/effecterPDRs descriptor.
type stateEntryJSON struct {
	States []uint8 `json:"states"`
}

// pdrEntryJSON is the on-disk shape of one entry inside a category file's
// effecterPDRs/sensorPDRs array. pdrType selects which typed record it
// decodes into (the PLDM PDR type code, matching the Type constants); the
// remaining fields are read only for the types that use them.
type pdrEntryJSON struct {
	PdrType        Type             `json:"pdrType"`
	TerminusHandle uint16           `json:"terminusHandle"`
	SensorID       uint16           `json:"sensorID"`
	EffecterID     uint16           `json:"effecterID"`
	EntityType     uint16           `json:"entityType"`
	EntityInstance uint16           `json:"entityInstance"`
	ContainerID    uint16           `json:"containerID"`
	StateSetID     uint16           `json:"stateSetId"`
	PossibleStates []stateEntryJSON `json:"possibleStates"`
	BaseUnit       uint8            `json:"baseUnit"`
	MinSettable    int32            `json:"minSettable"`
	MaxSettable    int32            `json:"maxSettable"`
}

// pdrCategoryFileJSON is the on-disk shape of one PDR JSON file: a category
// of descriptors grouped under the two wrapper arrays the terminus's PDR
// directory is built from.
type pdrCategoryFileJSON struct {
	EffecterPDRs []pdrEntryJSON `json:"effecterPDRs"`
	SensorPDRs   []pdrEntryJSON `json:"sensorPDRs"`
}

// IngestDir walks dir for *.json PDR category files and adds one record per
// effecterPDRs/sensorPDRs entry to repo. A file that fails to parse, or an
// entry within it that fails to decode, is logged and the rest of that file
// is skipped; it never aborts the rest of the directory. Returns the number
// of records successfully added.
func IngestDir(repo *Repository, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	added := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			logs.Errf("pdr: skip %s: %v", path, err)
			continue
		}
		var file pdrCategoryFileJSON
		if err := json.Unmarshal(raw, &file); err != nil {
			logs.Errf("pdr: skip %s: invalid json: %v", path, err)
			continue
		}
		n, err := ingestFile(repo, file)
		added += n
		if err != nil {
			logs.Errf("pdr: %s: %v, skipping remaining entries", path, err)
		}
	}
	return added, nil
}

// ingestFile adds one record per entry across both wrapper arrays. It stops
// at the first entry that fails to decode, matching the whole-file
// try/catch isolation of the terminus PDR generator this is ported from:
// a bad entry aborts the rest of that file, not just itself.
func ingestFile(repo *Repository, file pdrCategoryFileJSON) (int, error) {
	added := 0
	for _, entry := range file.EffecterPDRs {
		if err := ingestOne(repo, entry); err != nil {
			return added, err
		}
		added++
	}
	for _, entry := range file.SensorPDRs {
		if err := ingestOne(repo, entry); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func ingestOne(repo *Repository, desc pdrEntryJSON) error {
	switch desc.PdrType {
	case TypeStateSensor:
		states := make([][]uint8, len(desc.PossibleStates))
		for i, s := range desc.PossibleStates {
			states[i] = s.States
		}
		payload := EncodeStateSensorPDR(StateSensorPDR{
			TerminusHandle: desc.TerminusHandle,
			SensorID:       desc.SensorID,
			EntityType:     desc.EntityType,
			EntityInstance: desc.EntityInstance,
			ContainerID:    desc.ContainerID,
			StateSetID:     desc.StateSetID,
			PossibleStates: states,
		})
		repo.Add(TypeStateSensor, 1, payload)
		return nil
	case TypeStateEffecter:
		states := make([][]uint8, len(desc.PossibleStates))
		for i, s := range desc.PossibleStates {
			states[i] = s.States
		}
		payload := EncodeStateEffecterPDR(StateEffecterPDR{
			TerminusHandle: desc.TerminusHandle,
			EffecterID:     desc.EffecterID,
			EntityType:     desc.EntityType,
			EntityInstance: desc.EntityInstance,
			ContainerID:    desc.ContainerID,
			StateSetID:     desc.StateSetID,
			PossibleStates: states,
		})
		repo.Add(TypeStateEffecter, 1, payload)
		return nil
	case TypeNumericEffecter:
		payload := EncodeNumericEffecterPDR(NumericEffecterPDR{
			TerminusHandle: desc.TerminusHandle,
			EffecterID:     desc.EffecterID,
			EntityType:     desc.EntityType,
			EntityInstance: desc.EntityInstance,
			ContainerID:    desc.ContainerID,
			BaseUnit:       desc.BaseUnit,
			MinSettable:    desc.MinSettable,
			MaxSettable:    desc.MaxSettable,
		})
		repo.Add(TypeNumericEffecter, 1, payload)
		return nil
	default:
		return ErrUnknownPdrType
	}
}
