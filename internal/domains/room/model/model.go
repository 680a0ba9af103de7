package model

import (
	"hotel/shared/constant"
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldRoomType    = "room_type"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldAmenities   = "amenities"
	FieldImages      = "images"
	FieldIsAvailable = "is_available"
	FieldFeatured    = "featured"
)

// SortableFields are the columns a room listing may be ordered by.
var SortableFields = []string{FieldRoomNumber, FieldPrice, FieldCapacity, constant.FieldCreatedAt}

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeSuite  RoomType = "suite"
	RoomTypeDeluxe RoomType = "deluxe"
)

func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe:
		return true
	}

	return false
}

type Room struct {
	ID          string         `db:"id"`
	RoomNumber  string         `db:"room_number"`
	RoomType    RoomType       `db:"room_type"`
	Description string         `db:"description"`
	Price       float64        `db:"price"`
	Capacity    int            `db:"capacity"`
	Amenities   pq.StringArray `db:"amenities"`
	Images      pq.StringArray `db:"images"`
	IsAvailable bool           `db:"is_available"`
	Featured    bool           `db:"featured"`
	model.Metadata
}
