package dto

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	RoomNumber  string         `json:"roomNumber"  validate:"required,notblank,max=20"`
	RoomType    model.RoomType `json:"roomType"    validate:"required,enum"`
	Description string         `json:"description" validate:"required,notblank"`
	Price       *float64       `json:"price"       validate:"required,min=0"`
	Capacity    int            `json:"capacity"    validate:"required,min=1"`
	Amenities   []string       `json:"amenities"   validate:"omitempty,dive,notblank"`
	Images      []string       `json:"images"      validate:"omitempty,dive,url"`
	IsAvailable *bool          `json:"isAvailable"`
	Featured    bool           `json:"featured"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	isAvailable := true
	if c.IsAvailable != nil {
		isAvailable = *c.IsAvailable
	}

	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	images := c.Images
	if images == nil {
		images = []string{}
	}

	return model.Room{
		ID:          uuid.NewString(),
		RoomNumber:  strings.TrimSpace(c.RoomNumber),
		RoomType:    c.RoomType,
		Description: c.Description,
		Price:       *c.Price,
		Capacity:    c.Capacity,
		Amenities:   pq.StringArray(amenities),
		Images:      pq.StringArray(images),
		IsAvailable: isAvailable,
		Featured:    c.Featured,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	RoomNumber  *string         `db:"room_number"  json:"roomNumber"  validate:"omitempty,notblank,max=20"`
	RoomType    *model.RoomType `db:"room_type"    json:"roomType"    validate:"omitempty,enum"`
	Description *string         `db:"description"  json:"description" validate:"omitempty,notblank"`
	Price       *float64        `db:"price"        json:"price"       validate:"omitempty,min=0"`
	Capacity    *int            `db:"capacity"     json:"capacity"    validate:"omitempty,min=1"`
	Amenities   *pq.StringArray `db:"amenities"    json:"amenities"   validate:"omitempty,dive,notblank"`
	Images      *pq.StringArray `db:"images"       json:"images"      validate:"omitempty,dive,url"`
	IsAvailable *bool           `db:"is_available" json:"isAvailable"`
	Featured    *bool           `db:"featured"     json:"featured"`
}

// Normalize trims the room number the same way creation does.
func (u *UpdateRoomRequest) Normalize() {
	if u.RoomNumber != nil {
		trimmed := strings.TrimSpace(*u.RoomNumber)
		u.RoomNumber = &trimmed
	}
}

type UploadRoomImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	RoomNumber  string   `json:"roomNumber"`
	RoomType    string   `json:"roomType"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	IsAvailable bool     `json:"isAvailable"`
	Featured    bool     `json:"featured"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = string(model.RoomType)
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Amenities = nonNil(model.Amenities)
	r.Images = nonNil(model.Images)
	r.IsAvailable = model.IsAvailable
	r.Featured = model.Featured
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"totalPage"`
	TotalData int            `json:"totalData"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

// RoomFilter holds the listing query string. Only set values become conditions.
type RoomFilter struct {
	RoomType  string
	Available string
	Capacity  *int
	MinPrice  *float64
	MaxPrice  *float64
}

func (f *RoomFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.RoomType = query.Get(constant.QueryParamRoomType)
	f.Available = query.Get(constant.QueryParamAvailable)

	if value := query.Get(constant.QueryParamCapacity); value != constant.Empty {
		capacity, err := shared.ConvertStringToInt(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", constant.QueryParamCapacity, err)
		}

		f.Capacity = &capacity
	}

	for name, target := range map[string]**float64{
		constant.QueryParamMinPrice: &f.MinPrice,
		constant.QueryParamMaxPrice: &f.MaxPrice,
	} {
		value := query.Get(name)
		if value == constant.Empty {
			continue
		}

		price := shared.ConvertStringToFloat(value)
		if price == nil {
			return fmt.Errorf("invalid %s: %q is not a number", name, value)
		}

		*target = price
	}

	return nil
}

// ToFilterGroup AND-composes the set conditions. Availability only narrows
// the listing when asked for literally "true".
func (f *RoomFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.RoomType != constant.Empty {
		group.Add(gDto.Filter{Field: model.FieldRoomType, Value: f.RoomType, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Available == "true" {
		group.Add(gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Capacity != nil {
		group.Add(gDto.Filter{Field: model.FieldCapacity, Value: *f.Capacity, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.MinPrice != nil {
		group.Add(gDto.Filter{Field: model.FieldPrice, ArgName: "min_price", Value: *f.MinPrice, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.MaxPrice != nil {
		group.Add(gDto.Filter{Field: model.FieldPrice, ArgName: "max_price", Value: *f.MaxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	return group
}

// FeaturedFilter selects rooms that are both featured and bookable.
func FeaturedFilter() gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: model.FieldFeatured, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)
}
