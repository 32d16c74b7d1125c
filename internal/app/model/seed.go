package model

// SeedCatalog returns the demo catalog the store is populated with at
// startup. Callers receive fresh copies and may mutate them freely.
func SeedCatalog() []Product {
	return []Product{
		{
			ID:              "1",
			Name:            "Puerta Principal Modelo A",
			Brand:           "Aluar",
			Category:        "Puertas",
			CurrentPrice:    85000,
			Characteristics: []string{"Aluminio", "Doble vidrio", "120x210cm"},
		},
		{
			ID:              "2",
			Name:            "Ventana Corrediza Standard",
			Brand:           "Modena",
			Category:        "Ventanas",
			CurrentPrice:    45000,
			Characteristics: []string{"Aluminio", "Vidrio simple", "100x120cm"},
		},
		{
			ID:              "3",
			Name:            "Membrana Asfáltica Premium",
			Brand:           "Sika",
			Category:        "Membranas",
			CurrentPrice:    12500,
			Characteristics: []string{"4mm", "Poliéster", "10m²"},
		},
		{
			ID:              "4",
			Name:            "Puerta Balcón Doble Hoja",
			Brand:           "Aluar",
			Category:        "Puertas",
			CurrentPrice:    125000,
			Characteristics: []string{"Aluminio", "DVH", "160x210cm"},
		},
		{
			ID:              "5",
			Name:            "Ventana Banderola",
			Brand:           "Modena",
			Category:        "Ventanas",
			CurrentPrice:    32000,
			Characteristics: []string{"Aluminio", "Vidrio simple", "80x40cm"},
		},
		{
			ID:              "6",
			Name:            "Membrana Líquida Elastomérica",
			Brand:           "Weber",
			Category:        "Membranas",
			CurrentPrice:    8900,
			Characteristics: []string{"Líquida", "20kg", "Blanca"},
		},
	}
}
