package catalog

// Defaults returns the built-in catalog used when neither the remote document nor a
// local snapshot is available.
func Defaults() Catalog {
	return Catalog{
		{
			ID:          "p_bayam",
			Name:        "Bayam Hijau Organik",
			Category:    CategoryFresh,
			Description: "Kaya zat besi dan folat. Dipanen pagi hari dari petani lokal.",
			Price:       12000,
			Unit:        "ikat",
			Image:       "https://images.unsplash.com/photo-1576045057995-568f588f82fb?auto=format&fit=crop&w=400&q=80",
			IsPopular:   true,
		},
		{
			ID:          "p_wortel",
			Name:        "Wortel Brastagi",
			Category:    CategoryFresh,
			Description: "Sumber beta-karoten untuk kesehatan mata anak sekolah.",
			Price:       18000,
			Unit:        "kg",
			Image:       "https://images.unsplash.com/photo-1598170845058-32b9d6a5da37?auto=format&fit=crop&w=400&q=80",
		},
		{
			ID:          "p_telur",
			Name:        "Telur Ayam Kampung",
			Category:    CategoryFresh,
			Description: "Protein hewani lengkap, ukuran seragam untuk porsi MBG.",
			Price:       32000,
			Unit:        "kg",
			Image:       "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?auto=format&fit=crop&w=400&q=80",
			IsPopular:   true,
		},
		{
			ID:          "p_keripik_tempe",
			Name:        "Keripik Tempe Panggang",
			Category:    CategorySnacks,
			Description: "Camilan tinggi protein nabati tanpa pengawet.",
			Price:       15000,
			Unit:        "pack",
			Image:       "https://images.unsplash.com/photo-1599490659213-e2b9527bd087?auto=format&fit=crop&w=400&q=80",
		},
		{
			ID:          "p_pisang_sale",
			Name:        "Pisang Sale Madu",
			Category:    CategorySnacks,
			Description: "Pisang kepok dijemur alami, manis dari madu hutan.",
			Price:       22000,
			Unit:        "pack",
			Image:       "https://images.unsplash.com/photo-1603833665858-e61d17a86224?auto=format&fit=crop&w=400&q=80",
		},
		{
			ID:          "p_beras_merah",
			Name:        "Beras Merah Pecah Kulit",
			Category:    CategoryDry,
			Description: "Serat tinggi dan indeks glikemik rendah.",
			Price:       21000,
			Unit:        "kg",
			Image:       "https://images.unsplash.com/photo-1586201375761-83865001e31c?auto=format&fit=crop&w=400&q=80",
		},
		{
			ID:          "p_kacang_hijau",
			Name:        "Kacang Hijau Kupas",
			Category:    CategoryDry,
			Description: "Bahan bubur kacang hijau untuk menu sarapan bergizi.",
			Price:       26000,
			Unit:        "kg",
			Image:       "https://images.unsplash.com/photo-1515543904379-3d757afe72e4?auto=format&fit=crop&w=400&q=80",
		},
	}
}
