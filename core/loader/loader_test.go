package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mgr := NewManager(zap.New(core))

	on := &fakeFeature{name: "compare", enabled: true}
	off := &fakeFeature{name: "legacy", enabled: false}
	mgr.Register(on)
	mgr.Register(off)

	assert.Len(t, mgr.Features(), 2)
	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
	assert.Equal(t, 1, logs.FilterMessage("Feature loaded").Len())
	assert.Equal(t, 1, logs.FilterMessage("Feature disabled, skipping").Len())
}

func TestManager_LoadAll_Error(t *testing.T) {
	mgr := NewManager(nil)
	broken := &fakeFeature{name: "broken", enabled: true, err: errors.New("boom")}
	after := &fakeFeature{name: "after", enabled: true}
	mgr.Register(broken)
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature broken")
	assert.False(t, after.loaded)
}
