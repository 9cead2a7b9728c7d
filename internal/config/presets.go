package config

var Presets = map[string]map[string]*Config{
	"snake": {
		"calm": {
			Scene: "snake", Dt: 0.016, Duration: 30.0, FrameRate: 60,
			ConstraintIterations: 4, CellSize: 50,
			World: WorldConfig{HalfWidth: 400, HalfHeight: 300},
		},
		"frantic": {
			Scene: "snake", Dt: 0.008, Duration: 20.0, FrameRate: 120,
			ConstraintIterations: 6, CellSize: 40,
			World: WorldConfig{HalfWidth: 300, HalfHeight: 200},
		},
	},
	"crawler": {
		"walk": {
			Scene: "crawler", Dt: 0.016, Duration: 30.0, FrameRate: 60,
			ConstraintIterations: 4, CellSize: 50,
			World: WorldConfig{HalfWidth: 400, HalfHeight: 300},
		},
		"cramped": {
			Scene: "crawler", Dt: 0.016, Duration: 30.0, FrameRate: 60,
			ConstraintIterations: 4, CellSize: 30,
			World: WorldConfig{HalfWidth: 200, HalfHeight: 150},
		},
	},
	"starfish": {
		"drift": {
			Scene: "starfish", Dt: 0.016, Duration: 45.0, FrameRate: 60,
			ConstraintIterations: 4, CellSize: 50,
			World: WorldConfig{HalfWidth: 400, HalfHeight: 400},
		},
	},
}

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
