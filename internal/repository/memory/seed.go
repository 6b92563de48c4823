package memory

import "equishare-storefront/internal/domain"

// SeedUser is a demo account together with its plaintext password.
type SeedUser struct {
	User     domain.User
	Password string
}

// SeedItems returns the demo equipment listings.
func SeedItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			ID:               1,
			Name:             "Professional Power Drill",
			PricePerDayCents: 15000,
			Description:      "High-quality cordless power drill perfect for construction and DIY projects",
			Category:         domain.CategoryPowerTools,
			Rating:           4.5,
			Available:        true,
			Owner:            "John's Tools",
			Location:         "Mumbai, Maharashtra",
		},
		{
			ID:               2,
			Name:             "Electric Circular Saw",
			PricePerDayCents: 20000,
			Description:      "Professional grade circular saw for precise cutting of wood and metal",
			Category:         domain.CategoryCutting,
			Rating:           4.8,
			Available:        true,
			Owner:            "Pro Equipment Rental",
			Location:         "Delhi, Delhi",
		},
		{
			ID:               3,
			Name:             "Lawn Mower",
			PricePerDayCents: 30000,
			Description:      "Self-propelled lawn mower ideal for maintaining large gardens and lawns",
			Category:         domain.CategoryGarden,
			Rating:           4.3,
			Available:        false,
			Owner:            "Garden Master",
			Location:         "Bangalore, Karnataka",
		},
		{
			ID:               4,
			Name:             "Pressure Washer",
			PricePerDayCents: 25000,
			Description:      "High-pressure washer for cleaning vehicles, driveways, and outdoor surfaces",
			Category:         domain.CategoryCleaning,
			Rating:           4.6,
			Available:        true,
			Owner:            "Clean Pro",
			Location:         "Chennai, Tamil Nadu",
		},
		{
			ID:               5,
			Name:             "Extension Ladder",
			PricePerDayCents: 10000,
			Description:      "Sturdy extension ladder suitable for construction and maintenance work",
			Category:         domain.CategoryAccessTools,
			Rating:           4.2,
			Available:        true,
			Owner:            "Safety First",
			Location:         "Pune, Maharashtra",
		},
		{
			ID:               6,
			Name:             "Angle Grinder",
			PricePerDayCents: 12000,
			Description:      "Powerful angle grinder for cutting and grinding metal surfaces",
			Category:         domain.CategoryPowerTools,
			Rating:           4.7,
			Available:        true,
			Owner:            "Metal Works",
			Location:         "Hyderabad, Telangana",
		},
	}
}

// SeedUsers returns the demo renter and owner accounts.
func SeedUsers() []SeedUser {
	return []SeedUser{
		{
			User: domain.User{
				ID:          1,
				Name:        "John Doe",
				Email:       "john@example.com",
				PhoneNumber: "+91 9876543210",
				Address:     "123 Main St, Mumbai",
				Role:        domain.RoleRenter,
			},
			Password: "password123",
		},
		{
			User: domain.User{
				ID:          2,
				Name:        "Jane Smith",
				Email:       "jane@example.com",
				PhoneNumber: "+91 9876543211",
				Address:     "456 Oak St, Delhi",
				Role:        domain.RoleOwner,
			},
			Password: "password123",
		},
	}
}
