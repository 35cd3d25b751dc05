package pipeline

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/tiler/pkg/cache"
	"github.com/matzehuels/tiler/pkg/orchestrator"
)

// snapshotSchemaVersion changes whenever orchestrator.Layout changes shape.
const snapshotSchemaVersion uint16 = 1

type snapshotPayload struct {
	Schema uint16               `msgpack:"schema"`
	Layout *orchestrator.Layout `msgpack:"layout"`
}

// encodeSnapshot serializes a resolved layout with msgpack.
func encodeSnapshot(l *orchestrator.Layout) ([]byte, error) {
	return msgpack.Marshal(&snapshotPayload{Schema: snapshotSchemaVersion, Layout: l})
}

// decodeSnapshot reverses encodeSnapshot. Payloads written by another
// schema version or with a grid that does not match the bounding box are
// reported as cache.ErrCorrupt.
func decodeSnapshot(data []byte) (*orchestrator.Layout, error) {
	var p snapshotPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", cache.ErrCorrupt, err)
	}
	if p.Schema != snapshotSchemaVersion || p.Layout == nil {
		return nil, fmt.Errorf("%w: layout schema %d, want %d", cache.ErrCorrupt, p.Schema, snapshotSchemaVersion)
	}
	if got, want := p.Layout.Grid.Shape(), p.Layout.Shape(); got.Area() != want.Area() || (got.Area() != 0 && got != want) {
		return nil, fmt.Errorf("%w: grid %v does not match bounding box %v", cache.ErrCorrupt, got, want)
	}
	return p.Layout, nil
}
