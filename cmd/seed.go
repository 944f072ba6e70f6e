package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"

	"gopkg.in/yaml.v3"
)

// HubSeedFile is the YAML document read by the seed-hubs command.
type HubSeedFile struct {
	Hubs []HubSeed `yaml:"hubs"`
}

type HubSeed struct {
	Code      string  `yaml:"code"`
	Name      string  `yaml:"name"`
	District  string  `yaml:"district"`
	Street    string  `yaml:"street"`
	City      string  `yaml:"city"`
	Pincode   string  `yaml:"pincode"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Phone     string  `yaml:"phone"`
	Email     string  `yaml:"email"`
	MaxOrders int     `yaml:"maxOrders"`
	Manager   *struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"manager"`
}

// LoadHubSeed reads and parses a seed file.
func LoadHubSeed(path string) (HubSeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HubSeedFile{}, fmt.Errorf("failed to read hub seed file %s: %w", path, err)
	}
	return ParseHubSeed(data)
}

// ParseHubSeed parses the YAML and fills defaults: a missing name becomes
// "<District> Central Hub" and a missing capacity 1000.
func ParseHubSeed(data []byte) (HubSeedFile, error) {
	var f HubSeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return HubSeedFile{}, fmt.Errorf("failed to parse hub seed YAML: %w", err)
	}

	for i := range f.Hubs {
		h := &f.Hubs[i]
		if h.Name == "" {
			h.Name = h.District + " Central Hub"
		}
		if h.City == "" {
			h.City = h.District
		}
		if h.MaxOrders == 0 {
			h.MaxOrders = 1000
		}
	}
	return f, nil
}

// Command builds the create-hub command for the seed. Seeded hubs are active
// with default operating hours.
func (s HubSeed) Command() (commands.CreateHubCommand, error) {
	district, errDistrict := kernel.ParseDistrict(s.District)
	address, errAddress := kernel.NewAddress(s.Street, s.City, "Kerala", s.Pincode, "")
	location, errLocation := kernel.NewGeoLocation(s.Latitude, s.Longitude)
	if err := errors.Join(errDistrict, errAddress, errLocation); err != nil {
		return commands.CreateHubCommand{}, fmt.Errorf("hub %s: %w", s.Code, err)
	}

	var manager *hub.Manager
	if s.Manager != nil {
		manager = &hub.Manager{ID: s.Manager.ID, Name: s.Manager.Name}
	}

	return commands.NewCreateHubCommand(
		s.Code,
		s.Name,
		district,
		address,
		location,
		hub.Contact{Phone: s.Phone, Email: s.Email},
		s.MaxOrders,
		hub.DefaultOperatingHours(),
		hub.Active,
		manager,
	)
}

// HubCreator creates one hub.
type HubCreator interface {
	Handle(ctx context.Context, cmd commands.CreateHubCommand) (*hub.Hub, error)
}

// SeedHubs creates every hub of the file. Districts that already have an
// active hub are skipped, so the seed can be rerun.
func SeedHubs(ctx context.Context, creator HubCreator, f HubSeedFile, logger *slog.Logger) (created, skipped int, err error) {
	for _, s := range f.Hubs {
		cmd, err := s.Command()
		if err != nil {
			return created, skipped, err
		}

		h, err := creator.Handle(ctx, cmd)
		switch {
		case errors.Is(err, hub.ErrDistrictAlreadyServed):
			logger.Info("district already served, skipping", "code", s.Code, "district", s.District)
			skipped++
		case err != nil:
			return created, skipped, fmt.Errorf("create hub %s: %w", s.Code, err)
		default:
			logger.Info("hub created", "code", h.Code(), "district", h.District().String(), "id", h.ID().String())
			created++
		}
	}
	return created, skipped, nil
}
