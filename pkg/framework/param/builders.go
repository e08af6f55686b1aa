package param

import (
	"github.com/justyntemme/swmx/pkg/dsp/gain"
)

// OffOn are the choice names of a switch parameter.
var OffOn = []string{"Off", "On"}

// Choice creates an enum parameter over names.
func Choice(id uint32, key, name string, names []string, def int) *Builder {
	return New(id, key, name).
		Choices(names...).
		Default(def)
}

// Switch creates an Off/On parameter.
func Switch(id uint32, key, name string, on bool) *Builder {
	def := 0
	if on {
		def = 1
	}
	return Choice(id, key, name, OffOn, def).
		Formatter(nil, OnOffParser)
}

// BypassParameter creates the standard bypass switch.
func BypassParameter(id uint32, key string) *Builder {
	return Switch(id, key, "Bypass", false).Bypass()
}

// Integer creates a plain numeric parameter.
func Integer(id uint32, key, name string, min, max, def int) *Builder {
	return New(id, key, name).
		Range(min, max).
		Default(def)
}

// VolumeParameter creates a volume on the 0..106 scale (100 = unity).
func VolumeParameter(id uint32, key, name string) *Builder {
	return Integer(id, key, name, gain.VolumeMute, gain.VolumeMax, gain.VolumeUnity).
		Unit("dB").
		Formatter(VolumeFormatter, VolumeParser)
}

// PanParameter creates a stereo pan parameter
func PanParameter(id uint32, key, name string) *Builder {
	return Integer(id, key, name, -100, 100, 0).
		Formatter(PanFormatter, PanParser)
}

// BusParameter creates a bus selector over 0..count where 0 means none.
func BusParameter(id uint32, key, name string, count, def int) *Builder {
	return Integer(id, key, name, 0, count, def).
		Formatter(BusFormatter, BusParser)
}
