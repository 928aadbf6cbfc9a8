package model

// ScriptSettings are the global switches read from the extension config.
type ScriptSettings struct {
	Enable bool

	DisableRemoveHead  bool
	DisableRemoveProps bool

	NearClipOverride bool
	NearClipDistance float32

	DoFOverride bool
	DoFPlanes   [4]float32
}

func DefaultScriptSettings() ScriptSettings {
	return ScriptSettings{
		Enable:           true,
		NearClipDistance: 0.15,
		DoFPlanes:        [4]float32{0, 0.5, 1000, 5000},
	}
}
