package room_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	serviceMocks "hotel/internal/domains/room/service/mocks"
	"hotel/internal/handlers/room"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockRoom, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := serviceMocks.NewMockRoom(ctrl)
	handler := room.New(service, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func suite() dto.RoomResponse {
	return dto.RoomResponse{
		ID:          "r1",
		RoomNumber:  "301",
		RoomType:    string(model.RoomTypeSuite),
		Price:       299,
		Capacity:    4,
		Amenities:   []string{"WiFi"},
		Images:      []string{},
		IsAvailable: true,
	}
}

func TestHandler_GetRooms(t *testing.T) {
	service, router := newRouter(t)

	t.Run("filters are AND-composed", func(t *testing.T) {
		capacity := 2
		want := dto.RoomFilter{RoomType: "suite", Available: "true", Capacity: &capacity}

		service.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, want.ToFilterGroup()).
			Return(dto.GetRoomsResponse{Rooms: []dto.RoomResponse{suite()}, TotalData: 1}, nil)

		rec := serve(router, http.MethodGet, "/rooms?roomType=suite&available=true&capacity=2", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":1`)
		assert.Contains(t, rec.Body.String(), `"roomNumber":"301"`)
	})

	t.Run("no rooms", func(t *testing.T) {
		service.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gDto.And()).Return(dto.GetRoomsResponse{}, nil)

		rec := serve(router, http.MethodGet, "/rooms", "")

		assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, rec.Body.String())
	})

	t.Run("bad number", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/rooms?minPrice=cheap", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})
}

func TestHandler_GetFeaturedRooms(t *testing.T) {
	service, router := newRouter(t)

	service.EXPECT().GetFeatured(gomock.Any()).Return(dto.GetRoomsResponse{Rooms: []dto.RoomResponse{suite(), suite()}}, nil)

	rec := serve(router, http.MethodGet, "/rooms/featured", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
}

func TestHandler_GetRoomByID(t *testing.T) {
	service, router := newRouter(t)

	t.Run("found", func(t *testing.T) {
		service.EXPECT().Get(gomock.Any(), "r1").Return(suite(), nil)

		rec := serve(router, http.MethodGet, "/rooms/r1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		service.EXPECT().Get(gomock.Any(), "missing").Return(dto.RoomResponse{}, failure.NotFound("Room not found"))

		rec := serve(router, http.MethodGet, "/rooms/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Room not found","code":"NOT_FOUND"}`, rec.Body.String())
	})
}

func TestHandler_CreateRoom(t *testing.T) {
	service, router := newRouter(t)

	t.Run("created", func(t *testing.T) {
		service.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
				assert.Equal(t, "301", req.RoomNumber)
				assert.Equal(t, model.RoomTypeSuite, req.RoomType)
				require.NotNil(t, req.Price)
				assert.InDelta(t, 299, *req.Price, 0)

				return suite(), nil
			})

		body := `{"roomNumber":"301","roomType":"suite","description":"Top floor","price":299,"capacity":4}`
		rec := serve(router, http.MethodPost, "/rooms", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"r1"`)
	})

	t.Run("unknown room type", func(t *testing.T) {
		body := `{"roomNumber":"301","roomType":"penthouse","description":"Top floor","price":299,"capacity":4}`
		rec := serve(router, http.MethodPost, "/rooms", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "roomType is not a valid value")
	})

	t.Run("duplicate number", func(t *testing.T) {
		service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{}, failure.Conflict("Room number already exists"))

		body := `{"roomNumber":"301","roomType":"suite","description":"Top floor","price":0,"capacity":4}`
		rec := serve(router, http.MethodPost, "/rooms", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_UpdateRoom(t *testing.T) {
	service, router := newRouter(t)

	t.Run("partial update", func(t *testing.T) {
		service.EXPECT().Update(gomock.Any(), gomock.Any(), "r1").
			DoAndReturn(func(_ context.Context, req dto.UpdateRoomRequest, _ string) (dto.RoomResponse, error) {
				require.NotNil(t, req.IsAvailable)
				assert.False(t, *req.IsAvailable)
				assert.Nil(t, req.Price)

				res := suite()
				res.IsAvailable = false

				return res, nil
			})

		rec := serve(router, http.MethodPut, "/rooms/r1", `{"isAvailable":false}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isAvailable":false`)
	})

	t.Run("negative price", func(t *testing.T) {
		rec := serve(router, http.MethodPut, "/rooms/r1", `{"price":-1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeleteRoom(t *testing.T) {
	service, router := newRouter(t)

	service.EXPECT().Delete(gomock.Any(), "r1").Return(nil)

	rec := serve(router, http.MethodDelete, "/rooms/r1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Room deleted successfully"}`, rec.Body.String())
}

func TestHandler_UploadRoomImage(t *testing.T) {
	service, router := newRouter(t)

	upload := func(contentType string) *http.Request {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="view.png"`)
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = part.Write([]byte("\x89PNG"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		request := httptest.NewRequest(http.MethodPost, "/rooms/r1/images", body)
		request.Header.Set("Content-Type", writer.FormDataContentType())

		return request
	}

	t.Run("uploaded", func(t *testing.T) {
		service.EXPECT().UploadImage(gomock.Any(), gomock.Any(), "r1").
			DoAndReturn(func(_ context.Context, req dto.UploadRoomImageRequest, _ string) (dto.RoomResponse, error) {
				assert.Equal(t, "view.png", req.Image.Filename)
				assert.NotNil(t, req.ImageFile)

				res := suite()
				res.Images = []string{"https://cdn.hotel.com/room/r1/view.png"}

				return res, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, upload("image/png"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "room/r1/view.png")
	})

	t.Run("wrong type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, upload("application/pdf"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/rooms/r1/images", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
