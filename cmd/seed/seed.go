package main

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/repository"
	"equishare-storefront/internal/repository/memory"
)

type SetupData struct {
	Users []memory.SeedUser
	Items []domain.CatalogItem
}

type setupFile struct {
	Users []struct {
		Email       string `yaml:"email"`
		PhoneNumber string `yaml:"phone_number"`
		Password    string `yaml:"password"`
		Name        string `yaml:"name"`
		Address     string `yaml:"address"`
		Role        string `yaml:"role"`
	} `yaml:"users"`
	Items []struct {
		Name             string  `yaml:"name"`
		Description      string  `yaml:"description"`
		Category         string  `yaml:"category"`
		PricePerDayCents int64   `yaml:"price_per_day_cents"`
		Available        bool    `yaml:"available"`
		Rating           float64 `yaml:"rating"`
		Owner            string  `yaml:"owner"`
		Location         string  `yaml:"location"`
	} `yaml:"items"`
}

// ParseSetupData reads users and items from YAML
func ParseSetupData(raw []byte) (SetupData, error) {
	var f setupFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return SetupData{}, err
	}

	var data SetupData
	for _, u := range f.Users {
		role := domain.Role(u.Role)
		if !role.Valid() {
			return SetupData{}, fmt.Errorf("user %s: unknown role %q", u.Email, u.Role)
		}
		data.Users = append(data.Users, memory.SeedUser{
			User: domain.User{
				Email:       u.Email,
				PhoneNumber: u.PhoneNumber,
				Name:        u.Name,
				Address:     u.Address,
				Role:        role,
			},
			Password: u.Password,
		})
	}
	for _, it := range f.Items {
		category := domain.Category(it.Category)
		if category == domain.CategoryAll || !category.Valid() {
			return SetupData{}, fmt.Errorf("item %s: unknown category %q", it.Name, it.Category)
		}
		data.Items = append(data.Items, domain.CatalogItem{
			Name:             it.Name,
			Description:      it.Description,
			Category:         category,
			PricePerDayCents: it.PricePerDayCents,
			Available:        it.Available,
			Rating:           it.Rating,
			Owner:            it.Owner,
			Location:         it.Location,
		})
	}
	return data, nil
}

type Report struct {
	UsersCreated int
	UsersSkipped int
	ItemsCreated int
}

// Populate creates missing users and, when the catalog is empty, the items.
// Running it twice leaves the data unchanged.
func Populate(ctx context.Context, users repository.UserRepository, items repository.CatalogRepository, data SetupData) (Report, error) {
	var report Report

	for i, su := range data.Users {
		logger.Info("Creating user", "n", i+1, "of", len(data.Users), "email", su.User.Email)

		_, err := users.GetByEmail(ctx, su.User.Email)
		if err == nil {
			report.UsersSkipped++
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return report, fmt.Errorf("failed to look up %s: %w", su.User.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return report, fmt.Errorf("failed to hash password for %s: %w", su.User.Email, err)
		}
		u := su.User
		u.ID = 0
		u.PasswordHash = string(hash)
		if err := users.Create(ctx, &u); err != nil {
			return report, fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		report.UsersCreated++
	}

	existing, err := items.List(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list items: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Catalog already populated", "items", len(existing))
		return report, nil
	}

	for _, it := range data.Items {
		it.ID = 0
		if err := items.Create(ctx, &it); err != nil {
			return report, fmt.Errorf("failed to create item %s: %w", it.Name, err)
		}
		report.ItemsCreated++
	}
	return report, nil
}
