package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostTypeBuy  = "buy"
	PostTypeRent = "rent"

	PropertyApartment = "apartment"
	PropertyHouse     = "house"
	PropertyCondo     = "condo"
	PropertyLand      = "land"
)

// Post is a property listing stored in MongoDB. AuthorID holds the canonical
// string form of the owning user's id.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Price         float64            `json:"price" bson:"price"`
	DiscountPrice float64            `json:"discountPrice" bson:"discount_price"`
	Offer         bool               `json:"offer" bson:"offer"`
	Images        []string           `json:"images" bson:"images"`
	Address       string             `json:"address" bson:"address"`
	City          string             `json:"city" bson:"city"`
	Country       string             `json:"country,omitempty" bson:"country,omitempty"`
	Bedroom       int                `json:"bedroom" bson:"bedroom"`
	Bathroom      int                `json:"bathroom" bson:"bathroom"`
	Kitchen       int                `json:"kitchen" bson:"kitchen"`
	Parking       string             `json:"parking" bson:"parking"`
	Latitude      string             `json:"latitude" bson:"latitude"`
	Longitude     string             `json:"longitude" bson:"longitude"`
	Type          string             `json:"type" bson:"type"`
	Property      string             `json:"property" bson:"property"`
	Description   string             `json:"description" bson:"description"`
	Utilities     string             `json:"utilities" bson:"utilities"`
	Pet           string             `json:"pet" bson:"pet"`
	Income        string             `json:"income,omitempty" bson:"income,omitempty"`
	Size          float64            `json:"size" bson:"size"`
	School        string             `json:"school" bson:"school"`
	Bus           string             `json:"bus" bson:"bus"`
	Restaurant    string             `json:"restaurant" bson:"restaurant"`
	Supermarket   string             `json:"supermarket" bson:"supermarket"`
	Locations     []string           `json:"locations,omitempty" bson:"locations,omitempty"`
	AuthorID      string             `json:"authorId" bson:"author_id"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// PostWithAuthor is a post with its owner populated. Author is nil when the
// owning account no longer resolves.
type PostWithAuthor struct {
	*Post
	Author *UserCompact `json:"author"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title         string   `json:"title" form:"title" validate:"required"`
	Price         float64  `json:"price" form:"price" validate:"required,gt=0"`
	DiscountPrice float64  `json:"discountPrice" form:"discountPrice" validate:"gte=0"`
	Offer         bool     `json:"offer" form:"offer"`
	Images        []string `json:"images" form:"images"`
	Address       string   `json:"address" form:"address" validate:"required"`
	City          string   `json:"city" form:"city" validate:"required"`
	Country       string   `json:"country" form:"country"`
	Bedroom       int      `json:"bedroom" form:"bedroom" validate:"gte=0"`
	Bathroom      int      `json:"bathroom" form:"bathroom" validate:"gte=0"`
	Kitchen       int      `json:"kitchen" form:"kitchen" validate:"gte=0"`
	Parking       string   `json:"parking" form:"parking" validate:"required"`
	Latitude      string   `json:"latitude" form:"latitude" validate:"required,latitude"`
	Longitude     string   `json:"longitude" form:"longitude" validate:"required,longitude"`
	Type          string   `json:"type" form:"type" validate:"required,oneof=buy rent"`
	Property      string   `json:"property" form:"property" validate:"required,oneof=apartment house condo land"`
	Description   string   `json:"description" form:"description" validate:"required"`
	Utilities     string   `json:"utilities" form:"utilities" validate:"required"`
	Pet           string   `json:"pet" form:"pet" validate:"required"`
	Income        string   `json:"income" form:"income"`
	Size          float64  `json:"size" form:"size" validate:"required,gt=0"`
	School        string   `json:"school" form:"school" validate:"required"`
	Bus           string   `json:"bus" form:"bus" validate:"required"`
	Restaurant    string   `json:"restaurant" form:"restaurant" validate:"required"`
	Supermarket   string   `json:"supermarket" form:"supermarket" validate:"required"`
}

// UpdatePostRequest carries the only fields the update path writes. Each one
// replaces the stored value, including with its zero value.
type UpdatePostRequest struct {
	Title     string   `json:"title" form:"title" validate:"required"`
	Price     float64  `json:"price" form:"price" validate:"required,gt=0"`
	Images    []string `json:"images" form:"images"`
	Address   string   `json:"address" form:"address" validate:"required"`
	City      string   `json:"city" form:"city" validate:"required"`
	Bedroom   int      `json:"bedroom" form:"bedroom" validate:"gte=0"`
	Bathroom  int      `json:"bathroom" form:"bathroom" validate:"gte=0"`
	Locations []string `json:"locations" form:"locations"`
	Type      string   `json:"type" form:"type" validate:"required,oneof=buy rent"`
	Property  string   `json:"property" form:"property" validate:"required,oneof=apartment house condo land"`
}

// PostFilter is the structured predicate for listing posts. A nil field means
// no constraint on that attribute. MatchAll marks a request that supplied no
// query parameters at all.
type PostFilter struct {
	MatchAll bool
	City     *string
	Type     *string
	Property *string
	Bedroom  *int
	MinPrice *float64
	MaxPrice *float64
}
