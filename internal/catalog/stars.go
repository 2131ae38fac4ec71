// Package catalog holds a small bright-star catalogue and builds sky payloads
// centred on a zenith position.
package catalog

// Star represents a cataloged star with position, brightness and spectral type.
type Star struct {
	Name          string  // Common name (e.g., "Sirius", "Vega")
	RAdeg         float64 // Right Ascension in degrees (J2000)
	DecDeg        float64 // Declination in degrees (J2000)
	Mag           float64 // Apparent visual magnitude (lower = brighter)
	Spectral      string  // MK spectral type, e.g. "A1V"
	Constellation string
}

// Catalog is a collection of stars.
type Catalog struct {
	Stars []Star
}

// Default returns the built-in catalogue of bright stars (mag < 3.6).
// Coordinates are J2000 epoch.
func Default() Catalog {
	return Catalog{Stars: defaultStars}
}

// Find returns the star with the given name.
func (c Catalog) Find(name string) (Star, bool) {
	for _, s := range c.Stars {
		if s.Name == name {
			return s, true
		}
	}
	return Star{}, false
}

// defaultStars is ordered roughly by magnitude (brightest first).
var defaultStars = []Star{
	// Magnitude < 0.5
	{"Sirius", 101.287, -16.716, -1.46, "A1V", "Canis Major"},
	{"Canopus", 95.988, -52.696, -0.74, "A9II", "Carina"},
	{"Arcturus", 213.915, 19.182, -0.05, "K1.5III", "Bootes"},
	{"Vega", 279.235, 38.784, 0.03, "A0V", "Lyra"},
	{"Capella", 79.172, 45.998, 0.08, "G3III", "Auriga"},
	{"Rigel", 78.634, -8.202, 0.13, "B8Ia", "Orion"},
	{"Procyon", 114.826, 5.225, 0.34, "F5IV", "Canis Minor"},
	{"Achernar", 24.429, -57.237, 0.46, "B6Vep", "Eridanus"},
	{"Betelgeuse", 88.793, 7.407, 0.50, "M1Ia", "Orion"},

	// Magnitude 0.5-1.5
	{"Hadar", 210.956, -60.373, 0.61, "B1III", "Centaurus"},
	{"Altair", 297.696, 8.868, 0.76, "A7V", "Aquila"},
	{"Acrux", 186.650, -63.099, 0.76, "B0.5IV", "Crux"},
	{"Aldebaran", 68.980, 16.509, 0.85, "K5III", "Taurus"},
	{"Antares", 247.352, -26.432, 0.96, "M1.5Iab", "Scorpius"},
	{"Spica", 201.298, -11.161, 0.97, "B1III", "Virgo"},
	{"Pollux", 116.329, 28.026, 1.14, "K0III", "Gemini"},
	{"Fomalhaut", 344.413, -29.622, 1.16, "A3V", "Piscis Austrinus"},
	{"Deneb", 310.358, 45.280, 1.25, "A2Ia", "Cygnus"},
	{"Mimosa", 191.930, -59.689, 1.25, "B0.5III", "Crux"},
	{"Regulus", 152.093, 11.967, 1.35, "B8IVn", "Leo"},

	// Magnitude 1.5-2.0
	{"Adhara", 104.656, -28.972, 1.50, "B2II", "Canis Major"},
	{"Castor", 113.650, 31.889, 1.58, "A1V", "Gemini"},
	{"Gacrux", 187.791, -57.113, 1.63, "M3.5III", "Crux"},
	{"Shaula", 263.402, -37.104, 1.63, "B2IV", "Scorpius"},
	{"Bellatrix", 81.283, 6.350, 1.64, "B2III", "Orion"},
	{"Elnath", 81.573, 28.608, 1.65, "B7III", "Taurus"},
	{"Miaplacidus", 138.300, -69.717, 1.68, "A1III", "Carina"},
	{"Alnilam", 84.053, -1.202, 1.69, "B0Ia", "Orion"},
	{"Alnair", 332.058, -46.961, 1.74, "B6V", "Grus"},
	{"Alnitak", 85.190, -1.943, 1.77, "O9.5Ib", "Orion"},
	{"Alioth", 193.507, 55.960, 1.77, "A1III", "Ursa Major"},
	{"Dubhe", 165.932, 61.751, 1.79, "K0III", "Ursa Major"},
	{"Mirfak", 51.081, 49.861, 1.79, "F5Ib", "Perseus"},
	{"Wezen", 107.098, -26.393, 1.84, "F8Ia", "Canis Major"},
	{"Kaus Australis", 276.043, -34.384, 1.85, "B9.5III", "Sagittarius"},
	{"Avior", 125.629, -59.509, 1.86, "K3III", "Carina"},
	{"Alkaid", 206.885, 49.313, 1.86, "B3V", "Ursa Major"},
	{"Sargas", 264.330, -42.998, 1.87, "F1II", "Scorpius"},
	{"Menkalinan", 89.882, 44.948, 1.90, "A1IV", "Auriga"},
	{"Atria", 252.166, -69.028, 1.92, "K2Ib", "Triangulum Australe"},
	{"Alhena", 99.428, 16.399, 1.93, "A1IV", "Gemini"},
	{"Peacock", 306.412, -56.735, 1.94, "B2IV", "Pavo"},
	{"Mirzam", 95.675, -17.956, 1.98, "B1II", "Canis Major"},

	// Magnitude 2.0-2.5
	{"Alphard", 141.897, -8.659, 2.00, "K3II", "Hydra"},
	{"Hamal", 31.793, 23.462, 2.00, "K2III", "Aries"},
	{"Polaris", 37.954, 89.264, 2.02, "F7Ib", "Ursa Minor"},
	{"Algieba", 154.993, 19.842, 2.01, "K0III", "Leo"},
	{"Diphda", 10.897, -17.987, 2.04, "K0III", "Cetus"},
	{"Nunki", 283.816, -26.297, 2.05, "B2.5V", "Sagittarius"},
	{"Mirach", 17.433, 35.621, 2.05, "M0III", "Andromeda"},
	{"Menkent", 211.671, -36.370, 2.06, "K0III", "Centaurus"},
	{"Alpheratz", 2.097, 29.090, 2.06, "B8IV", "Andromeda"},
	{"Rasalhague", 263.734, 12.560, 2.07, "A5III", "Ophiuchus"},
	{"Kochab", 222.676, 74.156, 2.08, "K4III", "Ursa Minor"},
	{"Saiph", 86.939, -9.670, 2.09, "B0.5Ia", "Orion"},
	{"Almach", 30.975, 42.330, 2.10, "K3II", "Andromeda"},
	{"Algol", 47.042, 40.956, 2.12, "B8V", "Perseus"},
	{"Denebola", 177.265, 14.572, 2.13, "A3V", "Leo"},
	{"Sadr", 305.557, 40.257, 2.23, "F8Ib", "Cygnus"},
	{"Eltanin", 269.152, 51.489, 2.23, "K5III", "Draco"},
	{"Mizar", 200.981, 54.925, 2.23, "A2V", "Ursa Major"},
	{"Schedar", 10.127, 56.537, 2.24, "K0III", "Cassiopeia"},
	{"Caph", 2.295, 59.150, 2.27, "F2III", "Cassiopeia"},
	{"Merak", 165.460, 56.382, 2.37, "A1V", "Ursa Major"},
	{"Enif", 326.046, 9.875, 2.39, "K2Ib", "Pegasus"},
	{"Scheat", 345.944, 28.083, 2.42, "M2II", "Pegasus"},
	{"Aludra", 111.024, -29.303, 2.45, "B5Ia", "Canis Major"},
	{"Alderamin", 319.645, 62.586, 2.45, "A8V", "Cepheus"},
	{"Gienah", 311.553, 33.970, 2.48, "K0III", "Cygnus"},
	{"Markab", 346.190, 15.205, 2.49, "B9III", "Pegasus"},

	// Magnitude 2.5-3.6
	{"Zubeneschamali", 229.252, -9.383, 2.61, "B8V", "Libra"},
	{"Unukalhai", 236.067, 6.426, 2.63, "K2III", "Serpens"},
	{"Tarazed", 296.565, 10.613, 2.72, "K3II", "Aquila"},
	{"Vindemiatrix", 195.544, 10.959, 2.83, "G8III", "Virgo"},
	{"Albireo", 292.680, 27.960, 3.05, "K3II", "Cygnus"},
	{"Sulafat", 284.736, 32.690, 3.24, "B9III", "Lyra"},
	{"Sheliak", 282.520, 33.363, 3.52, "B7II", "Lyra"},
}
