package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/machine"
	"github.com/patsoffice/arcadecore/machine/registry"
	"github.com/patsoffice/arcadecore/rom"
)

func noopFactory(set *rom.Set) (machine.Machine, error) { return nil, nil }

func TestRegisterAndFindRoundTrip(t *testing.T) {
	registry.Register(registry.Entry{Name: "zzz-test-machine-a", RomName: "zzztesta", Create: noopFactory})

	e, ok := registry.Find("zzz-test-machine-a")
	require.True(t, ok)
	assert.Equal(t, "zzztesta", e.RomName)
}

func TestFindUnknownNameReturnsFalse(t *testing.T) {
	_, ok := registry.Find("zzz-no-such-machine")
	assert.False(t, ok)
}

func TestAllIsSortedByName(t *testing.T) {
	registry.Register(registry.Entry{Name: "zzz-test-machine-c", RomName: "zzztestc", Create: noopFactory})
	registry.Register(registry.Entry{Name: "zzz-test-machine-b", RomName: "zzztestb", Create: noopFactory})

	all := registry.All()
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Name, all[i].Name)
	}
}

func TestRegisterDuplicateNamePanics(t *testing.T) {
	registry.Register(registry.Entry{Name: "zzz-test-machine-dup", RomName: "zzztestdup", Create: noopFactory})
	assert.Panics(t, func() {
		registry.Register(registry.Entry{Name: "zzz-test-machine-dup", RomName: "zzztestdup", Create: noopFactory})
	})
}
