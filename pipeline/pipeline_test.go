package pipeline_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/config"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/dummyjson"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/models"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/pipeline"
)

type fakeRemote struct {
	users     []models.User
	carts     []models.Cart
	failCarts bool
}

func (f *fakeRemote) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

		switch r.URL.Path {
		case "/users":
			writePage(t, w, "users", pageOf(f.users, limit, skip))
		case "/carts":
			if f.failCarts {
				http.Error(w, "remote exploded", http.StatusBadGateway)
				return
			}
			writePage(t, w, "carts", pageOf(f.carts, limit, skip))
		default:
			http.NotFound(w, r)
		}
	}))
}

func pageOf[T any](items []T, limit, skip int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func writePage[T any](t *testing.T, w http.ResponseWriter, field string, page []T) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{field: page}))
}

// memoryDB gives the pipeline an OpenFunc over a shared in-memory database
// and a second handle to inspect it after the run closed its own connection.
func memoryDB(t *testing.T) (pipeline.OpenFunc, *gorm.DB) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"

	open := func(string) (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	keep, err := open("")
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, cerr := keep.DB()
		if cerr == nil {
			sqlDB.Close()
		}
	})
	return open, keep
}

func testRemote() *fakeRemote {
	return &fakeRemote{
		users: []models.User{
			{ID: 1, FirstName: "Emily", LastName: "Johnson"},
			{ID: 2, FirstName: "Michael", LastName: "Williams"},
			{ID: 3, FirstName: "Sophia", LastName: "Brown"},
		},
		carts: []models.Cart{
			{ID: 10, UserID: 1, DiscountedTotal: 50, Products: []models.CartProduct{
				{ProductID: 101, Title: "Mascara", Price: 25, Quantity: 2, Total: 50},
			}},
			{ID: 11, UserID: 99, DiscountedTotal: 10}, // unknown user
			{ID: 12, UserID: 2, DiscountedTotal: 100, Products: []models.CartProduct{
				{ProductID: 102, Title: "Palette", Price: 100, Quantity: 1, Total: 100},
			}},
		},
	}
}

func TestRun_FullPass(t *testing.T) {
	remote := testRemote()
	srv := remote.server(t)
	defer srv.Close()

	open, inspect := memoryDB(t)
	p := &pipeline.Pipeline{
		Config: config.Config{LineItemPolicy: config.LineItemAppend},
		Client: dummyjson.NewClient(srv.URL, 2),
		Open:   open,
	}

	stats, err := p.Run()
	require.NoError(t, err)
	require.Equal(t, pipeline.Stats{
		UsersExtracted: 3,
		UsersSaved:     3,
		CartsExtracted: 3,
		CartsSaved:     2,
		CartsRejected:  1,
		ProductsSaved:  2,
	}, stats)

	var userCount, cartCount, itemCount int64
	require.NoError(t, inspect.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, inspect.Model(&models.Cart{}).Count(&cartCount).Error)
	require.NoError(t, inspect.Model(&models.CartProduct{}).Count(&itemCount).Error)
	require.EqualValues(t, 3, userCount)
	require.EqualValues(t, 2, cartCount)
	require.EqualValues(t, 2, itemCount)

	// the cart referencing the unknown user never landed
	var rejectedCount int64
	require.NoError(t, inspect.Model(&models.Cart{}).Where("id = ?", 11).Count(&rejectedCount).Error)
	require.Zero(t, rejectedCount)
}

func TestRun_Rerun_Converges(t *testing.T) {
	remote := testRemote()
	srv := remote.server(t)
	defer srv.Close()

	open, inspect := memoryDB(t)
	p := &pipeline.Pipeline{
		Config: config.Config{LineItemPolicy: config.LineItemReplace},
		Client: dummyjson.NewClient(srv.URL, 2),
		Open:   open,
	}

	for i := 0; i < 2; i++ {
		_, err := p.Run()
		require.NoError(t, err)
	}

	var cartCount, itemCount int64
	require.NoError(t, inspect.Model(&models.Cart{}).Count(&cartCount).Error)
	require.NoError(t, inspect.Model(&models.CartProduct{}).Count(&itemCount).Error)
	require.EqualValues(t, 2, cartCount)
	require.EqualValues(t, 2, itemCount)
}

func TestRun_AbortAtCartExtraction(t *testing.T) {
	remote := testRemote()
	remote.failCarts = true
	srv := remote.server(t)
	defer srv.Close()

	open, inspect := memoryDB(t)
	p := &pipeline.Pipeline{
		Config: config.Config{LineItemPolicy: config.LineItemAppend},
		Client: dummyjson.NewClient(srv.URL, 2),
		Open:   open,
	}

	stats, err := p.Run()
	require.Error(t, err)

	var terr *dummyjson.TransportError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, "carts", terr.Resource)

	// users committed before the failure stay; no cart writes happened
	require.Equal(t, 3, stats.UsersSaved)
	var userCount, cartCount, itemCount int64
	require.NoError(t, inspect.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, inspect.Model(&models.Cart{}).Count(&cartCount).Error)
	require.NoError(t, inspect.Model(&models.CartProduct{}).Count(&itemCount).Error)
	require.EqualValues(t, 3, userCount)
	require.Zero(t, cartCount)
	require.Zero(t, itemCount)
}

func TestRun_ConnectFailureIsFatal(t *testing.T) {
	srv := testRemote().server(t)
	defer srv.Close()

	p := &pipeline.Pipeline{
		Config: config.Config{},
		Client: dummyjson.NewClient(srv.URL, 2),
		Open: func(string) (*gorm.DB, error) {
			return nil, gorm.ErrInvalidDB
		},
	}

	_, err := p.Run()
	require.ErrorIs(t, err, gorm.ErrInvalidDB)
	require.Contains(t, err.Error(), "connect to storage")
}
