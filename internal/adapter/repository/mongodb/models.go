package mongodb

import (
	"time"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listingDocument is the persisted shape of a listing. The store assigns the
// ObjectID; the domain only ever sees its hex form.
type listingDocument struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	Name         string              `bson:"name"`
	Price        float64             `bson:"price"`
	Engine       domain.Engine       `bson:"engine"`
	EngineSize   float64             `bson:"engine_size"`
	Mileage      int                 `bson:"mileage"`
	Transmission domain.Transmission `bson:"transmission"`
	Color        string              `bson:"color"`
	Year         int                 `bson:"year"`
	Description  string              `bson:"description"`
	Images       []string            `bson:"images"`
	Location     string              `bson:"location"`
	CreatedAt    time.Time           `bson:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at"`
}

// userDocument keeps the id as the plain string the auth provider assigned;
// accounts are not created through this service.
type userDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
}

func toListingDocument(l *domain.Listing) listingDocument {
	return listingDocument{
		Name:         l.Name,
		Price:        l.Price,
		Engine:       l.Engine,
		EngineSize:   l.EngineSize,
		Mileage:      l.Mileage,
		Transmission: l.Transmission,
		Color:        l.Color,
		Year:         l.Year,
		Description:  l.Description,
		Images:       l.Images,
		Location:     l.Location,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toDomainListing(d *listingDocument) *domain.Listing {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Listing{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Price:        d.Price,
		Engine:       d.Engine,
		EngineSize:   d.EngineSize,
		Mileage:      d.Mileage,
		Transmission: d.Transmission,
		Color:        d.Color,
		Year:         d.Year,
		Description:  d.Description,
		Images:       images,
		Location:     d.Location,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDomainUser(d *userDocument) *domain.User {
	return &domain.User{
		ID:        d.ID,
		Email:     d.Email,
		Role:      d.Role,
		CreatedAt: d.CreatedAt,
	}
}
