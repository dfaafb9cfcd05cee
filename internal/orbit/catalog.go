package orbit

// DefaultCatalog returns the eight planets with their display data.
func DefaultCatalog() []Spec {
	return []Spec{
		{
			Info: Info{
				Name:         "Mercury",
				RealDistance: "57.9 million km",
				RealPeriod:   "88 Earth days",
				RealDiameter: "4,879 km",
				Fact:         "Mercury has extreme temperature variations, from 427°C to -173°C!",
				Color:        0x8C7853,
			},
			Radius: 1.2, Distance: 25, Speed: 4.74,
		},
		{
			Info: Info{
				Name:         "Venus",
				RealDistance: "108.2 million km",
				RealPeriod:   "225 Earth days",
				RealDiameter: "12,104 km",
				Fact:         "Venus rotates backwards and has the hottest surface in our solar system!",
				Color:        0xFFC649,
			},
			Radius: 1.8, Distance: 35, Speed: 3.50,
		},
		{
			Info: Info{
				Name:         "Earth",
				RealDistance: "149.6 million km",
				RealPeriod:   "365.25 days",
				RealDiameter: "12,756 km",
				Fact:         "Earth is the only known planet with life and liquid water on its surface!",
				Color:        0x6B93D6,
			},
			Radius: 2.0, Distance: 45, Speed: 2.98,
		},
		{
			Info: Info{
				Name:         "Mars",
				RealDistance: "227.9 million km",
				RealPeriod:   "687 Earth days",
				RealDiameter: "6,792 km",
				Fact:         "Mars has the largest volcano in the solar system - Olympus Mons!",
				Color:        0xC1440E,
			},
			Radius: 1.6, Distance: 55, Speed: 2.41,
		},
		{
			Info: Info{
				Name:         "Jupiter",
				RealDistance: "778.5 million km",
				RealPeriod:   "11.9 Earth years",
				RealDiameter: "142,984 km",
				Fact:         "Jupiter is so massive it could contain all other planets combined!",
				Color:        0xD8CA9D,
			},
			Radius: 4.5, Distance: 75, Speed: 1.31,
		},
		{
			Info: Info{
				Name:         "Saturn",
				RealDistance: "1.43 billion km",
				RealPeriod:   "29.5 Earth years",
				RealDiameter: "120,536 km",
				Fact:         "Saturn is less dense than water and has over 80 known moons!",
				Color:        0xFAD5A5,
			},
			Radius: 4.0, Distance: 95, Speed: 0.97,
		},
		{
			Info: Info{
				Name:         "Uranus",
				RealDistance: "2.87 billion km",
				RealPeriod:   "84 Earth years",
				RealDiameter: "51,118 km",
				Fact:         "Uranus rotates on its side and has faint rings around it!",
				Color:        0x4FD0E7,
			},
			Radius: 3.2, Distance: 115, Speed: 0.68,
		},
		{
			Info: Info{
				Name:         "Neptune",
				RealDistance: "4.50 billion km",
				RealPeriod:   "165 Earth years",
				RealDiameter: "49,528 km",
				Fact:         "Neptune has the strongest winds in the solar system, up to 2,100 km/h!",
				Color:        0x4B70DD,
			},
			Radius: 3.0, Distance: 135, Speed: 0.54,
		},
	}
}

// CatalogSubset returns the catalog entries whose names appear in names, in
// catalog order. Unknown names are ignored.
func CatalogSubset(names ...string) []Spec {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Spec
	for _, s := range DefaultCatalog() {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out
}
