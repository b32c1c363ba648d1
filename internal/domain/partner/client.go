package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finapp/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Client represents a client company in the partner context.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.BaseEntity
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// NewClient creates a new client with required fields
func NewClient(name, industry, contactEmail, contactPhone, address string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if contactEmail != "" {
		if err := validateClientEmail(contactEmail); err != nil {
			return nil, err
		}
	}

	return &Client{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         strings.TrimSpace(name),
		Industry:     industry,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		Address:      address,
	}, nil
}

// Restore rebuilds a client from stored state, re-running validation.
func Restore(id uuid.UUID, name, industry, contactEmail, contactPhone, address string, createdAt, updatedAt time.Time) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if contactEmail != "" {
		if err := validateClientEmail(contactEmail); err != nil {
			return nil, err
		}
	}

	return &Client{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		Name:         strings.TrimSpace(name),
		Industry:     industry,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		Address:      address,
	}, nil
}

// UpdateDetails updates the client's details. Empty strings leave the
// corresponding field unchanged.
func (c *Client) UpdateDetails(name, industry, contactEmail, contactPhone, address string) error {
	if name != "" {
		if err := validateClientName(name); err != nil {
			return err
		}
		c.Name = strings.TrimSpace(name)
	}
	if industry != "" {
		c.Industry = industry
	}
	if contactEmail != "" {
		if err := validateClientEmail(contactEmail); err != nil {
			return err
		}
		c.ContactEmail = contactEmail
	}
	if contactPhone != "" {
		c.ContactPhone = contactPhone
	}
	if address != "" {
		c.Address = address
	}
	c.UpdatedAt = time.Now().UTC()

	return nil
}

func validateClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validateClientEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
