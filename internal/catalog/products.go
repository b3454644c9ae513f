package catalog

import "sportmarket/internal/domain"

// Sizes offered for every built-in uniform and kit.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

var builtinProducts = []domain.Product{
	{
		ID:            201,
		Name:          "WKF Kumite Kit",
		Category:      "Kumite Kit",
		Price:         6000,
		OriginalPrice: 6000,
		Colors:        []string{"blue", "red"},
		Image:         "/kumite kit.jpg",
		Sizes:         Sizes,
	},
	{
		ID:            202,
		Name:          "Karate Uniform (Adidas)",
		Category:      "Karate Uniform",
		Price:         3500,
		OriginalPrice: 4000,
		Discount:      "₹500 OFF",
		Colors:        []string{"white"},
		Image:         "/Adidas karate.jpg",
		Sizes:         Sizes,
	},
	{
		ID:            203,
		Name:          "Karate Uniform (Aarwaza)",
		Category:      "Karate Uniform",
		Price:         6500,
		OriginalPrice: 7000,
		Discount:      "₹500 OFF",
		Colors:        []string{"white"},
		Image:         "/Aarwaza karate.jpg",
		Sizes:         Sizes,
	},
}

// defaultDetail is served for 201 and for every id without its own entry.
var defaultDetail = domain.ProductDetail{
	Price: 6000,
	MRP:   6000,
	Image: "/kumite kit.jpg",
	Details: []domain.Attribute{
		{Name: "Product Type", Value: "WKF Approved Kumite Kit"},
		{Name: "Brand", Value: "Arawaza"},
		{Name: "Includes", Value: "Complete Kumite Protection Set"},
		{Name: "Colors", Value: "Red & Blue"},
		{Name: "Gloves", Value: "Red & Blue"},
		{Name: "Body Protector", Value: "Chest Guard"},
		{Name: "Female Chest Protector", Value: "Available"},
		{Name: "Shin Guards", Value: "Red / Blue"},
		{Name: "Foot Protectors", Value: "Red / Blue"},
		{Name: "Groin Guard", Value: "Men / Boys"},
		{Name: "Mouth Guard", Value: "Included"},
		{Name: "Head Guard", Value: "Mandatory for Kids U14"},
		{Name: "Price", Value: "₹ 6000"},
	},
	About: []string{
		"WKF Approved Kumite Kit designed for professional use",
		"Includes Gloves, Body Protector, Shin Guards, Foot Guards",
		"Female chest protector available",
		"Head Guard mandatory for kids under 14",
		"Premium Arawaza brand protective kit",
	},
}

var builtinDetails = map[int]domain.ProductDetail{
	202: {
		Price: 3000,
		MRP:   3500,
		Image: "/Adidas karate.jpg",
		Details: []domain.Attribute{
			{Name: "Product Type", Value: "Karate Uniform / Karategi"},
			{Name: "Available Sizes", Value: "XS, S, M, L, XL, XXL"},
			{Name: "Brands Available", Value: "Adidas, Arawaza & High-Quality Local Brands"},
			{Name: "Price", Value: "₹ 3000 (₹500 Discount Applicable)"},
			{Name: "Suitable For", Value: "Kids to Adults"},
			{Name: "Usage", Value: "Training, Practice & Competition"},
			{Name: "Material", Value: "Durable High-Quality Fabric"},
			{Name: "Comfort", Value: "Soft, Lightweight & Comfortable Fit"},
			{Name: "Athlete Level", Value: "Beginners to Advanced"},
		},
		About: []string{
			"Fit Type: Karate Uniform | Suitable for training, practice and competitions",
			"High-quality durable karate fabric designed for long-term use",
			"Comfortable fit with breathable material for better movement",
			"Premium Adidas karate uniform trusted by athletes",
			"Sizes Available: XS, S, M, L, XL, XXL",
		},
	},
	203: {
		Price: 4500,
		MRP:   5000,
		Image: "/Aarwaza karate.jpg",
		Details: []domain.Attribute{
			{Name: "Product Type", Value: "Karate Uniform / Karategi"},
			{Name: "Available Sizes", Value: "XS, S, M, L, XL, XXL"},
			{Name: "Brands Available", Value: "Adidas, Arawaza & Premium Local Brands"},
			{Name: "Price", Value: "₹ 4500 (₹500 Discount Applicable)"},
			{Name: "Suitable For", Value: "Kids, Teens & Adults"},
			{Name: "Usage", Value: "Training, Practice & Competition"},
			{Name: "Material", Value: "Durable High-Quality Fabric"},
			{Name: "Comfort", Value: "Soft, Lightweight & Comfortable Fit"},
			{Name: "Athlete Level", Value: "Beginners to Advanced"},
		},
		About: []string{
			"Premium quality karate uniform suitable for kids, teens and adults",
			"Ideal for training, practice and competition",
			"Durable stitching and strong cloth for long-lasting performance",
			"Comfortable and lightweight for smooth movement",
			"Sizes Available: XS, S, M, L, XL, XXL",
		},
	},
}
