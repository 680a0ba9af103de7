package helper

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	adminModel "hotel/internal/domains/admin/model"
	adminDto "hotel/internal/domains/admin/model/dto"
	adminRepo "hotel/internal/domains/admin/repository"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/password"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

var DefaultAdmin = adminDto.SeedAdminRequest{
	Name:     "Admin User",
	Email:    "admin@hotel.com",
	Password: "admin123",
}

func price(value float64) *float64 {
	return &value
}

var SampleRooms = []roomDto.CreateRoomRequest{
	{
		RoomNumber:  "101",
		RoomType:    roomModel.RoomTypeSingle,
		Description: "Cozy single room with city view, perfect for solo travelers",
		Price:       price(99),
		Capacity:    1,
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Mini Bar"},
		Images:      []string{"https://images.unsplash.com/photo-1631049307264-da0ec9d70304?w=800"},
		Featured:    true,
	},
	{
		RoomNumber:  "201",
		RoomType:    roomModel.RoomTypeDouble,
		Description: "Spacious double room with comfortable king-size bed",
		Price:       price(149),
		Capacity:    2,
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Room Service"},
		Images:      []string{"https://images.unsplash.com/photo-1590490360182-c33d57733427?w=800"},
		Featured:    true,
	},
	{
		RoomNumber:  "301",
		RoomType:    roomModel.RoomTypeSuite,
		Description: "Luxurious suite with separate living area and panoramic views",
		Price:       price(299),
		Capacity:    4,
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Room Service", "Jacuzzi", "Balcony"},
		Images:      []string{"https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=800"},
		Featured:    true,
	},
	{
		RoomNumber:  "401",
		RoomType:    roomModel.RoomTypeDeluxe,
		Description: "Premium deluxe room with ocean view and exclusive amenities",
		Price:       price(399),
		Capacity:    3,
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Room Service", "Jacuzzi", "Balcony", "Butler Service"},
		Images:      []string{"https://images.unsplash.com/photo-1591088398332-8a7791972843?w=800"},
	},
	{
		RoomNumber:  "102",
		RoomType:    roomModel.RoomTypeSingle,
		Description: "Comfortable single room with modern amenities",
		Price:       price(89),
		Capacity:    1,
		Amenities:   []string{"WiFi", "TV", "Air Conditioning"},
		Images:      []string{"https://images.unsplash.com/photo-1631049035182-249067d7618e?w=800"},
	},
	{
		RoomNumber:  "202",
		RoomType:    roomModel.RoomTypeDouble,
		Description: "Modern double room with garden view",
		Price:       price(139),
		Capacity:    2,
		Amenities:   []string{"WiFi", "TV", "Air Conditioning", "Mini Bar"},
		Images:      []string{"https://images.unsplash.com/photo-1618773928121-c32242e63f39?w=800"},
	},
}

// Seeder inserts the default administrator and the sample rooms. Rows that
// already exist are left untouched, so it can be run repeatedly.
type Seeder struct {
	admins adminRepo.Admin
	rooms  roomRepo.Room
}

func NewSeeder(admins adminRepo.Admin, rooms roomRepo.Room) Seeder {
	return Seeder{admins: admins, rooms: rooms}
}

func (s Seeder) Seed(ctx context.Context) error {
	if err := s.seedAdmin(ctx, DefaultAdmin); err != nil {
		return err
	}

	return s.seedRooms(ctx, SampleRooms)
}

func (s Seeder) seedAdmin(ctx context.Context, req adminDto.SeedAdminRequest) error {
	if err := validator.ValidateStruct(&req); err != nil {
		return fmt.Errorf("invalid seed admin: %w", err)
	}

	exists, err := s.admins.Exist(ctx, gDto.And(gDto.Filter{
		Field:    adminModel.FieldEmail,
		Value:    req.Email,
		Operator: gDto.FilterOperatorEq,
		Table:    adminModel.TableName,
	}))
	if err != nil {
		return fmt.Errorf("failed to check seed admin: %w", err)
	}

	if exists {
		log.Info().Str("email", req.Email).Msg("Seed admin already exists")

		return nil
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	if err := s.admins.Insert(ctx, req.ToModel(hashed)); err != nil {
		return fmt.Errorf("failed to insert seed admin: %w", err)
	}

	log.Info().Str("email", req.Email).Msg("Admin created")

	return nil
}

func (s Seeder) seedRooms(ctx context.Context, requests []roomDto.CreateRoomRequest) error {
	rooms := make([]roomModel.Room, 0, len(requests))

	for i := range requests {
		req := requests[i]

		if err := validator.ValidateStruct(&req); err != nil {
			return fmt.Errorf("invalid seed room %s: %w", req.RoomNumber, err)
		}

		exists, err := s.rooms.Exist(ctx, gDto.And(gDto.Filter{
			Field:    roomModel.FieldRoomNumber,
			Value:    req.RoomNumber,
			Operator: gDto.FilterOperatorEq,
			Table:    roomModel.TableName,
		}))
		if err != nil {
			return fmt.Errorf("failed to check seed room: %w", err)
		}

		if exists {
			continue
		}

		rooms = append(rooms, req.ToModel(constant.ContextSystem))
	}

	if len(rooms) == 0 {
		log.Info().Msg("Sample rooms already exist")

		return nil
	}

	if err := s.rooms.InsertBulk(ctx, rooms); err != nil {
		return fmt.Errorf("failed to insert sample rooms: %w", err)
	}

	log.Info().Int("count", len(rooms)).Msg("Sample rooms created")

	return nil
}

// Seed connects to the write database and runs the Seeder.
func Seed(ctx context.Context, config *config.Config) error {
	connection := postgres.New(config)
	tracer := otel.New(config)

	defer func() {
		_ = connection.Read.Close()
		_ = connection.Write.Close()
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	seeder := NewSeeder(adminRepo.New(connection, tracer), roomRepo.New(connection, tracer))

	return seeder.Seed(ctx)
}
