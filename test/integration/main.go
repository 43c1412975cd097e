package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"mcatalog/catalog/pkg/model"
	catalogtest "mcatalog/catalog/pkg/testutil"
	"mcatalog/pkg/discovery"
	"mcatalog/pkg/discovery/memory"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
)

const (
	catalogServiceName = "catalog"

	catalogServiceAddress = "localhost:8084"
	providerAddress       = "localhost:8085"
)

var testSecret = []byte("integration-secret")

func main() {
	log.Println("Starting the integration test")

	ctx := context.Background()
	logger := zap.NewNop()
	registry := memory.NewRegistry()

	log.Println("Starting the provider stub")
	providerSrv := startProviderStub()
	defer providerSrv.Shutdown(ctx)

	log.Println("Starting the catalog service")
	catalogSrv := &http.Server{
		Addr:    catalogServiceAddress,
		Handler: catalogtest.NewTestCatalogServer("http://"+providerAddress, testSecret, logger),
	}
	go func() {
		if err := catalogSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()
	defer catalogSrv.Shutdown(ctx)

	instanceID := discovery.GenerateInstanceID(catalogServiceName)
	if err := registry.Register(ctx, instanceID, catalogServiceName, catalogServiceAddress); err != nil {
		panic(err)
	}
	defer registry.Deregister(ctx, instanceID, catalogServiceName)
	addrs, err := registry.ServiceAddresses(ctx, catalogServiceName)
	if err != nil {
		log.Fatalf("resolve catalog service: %v", err)
	}
	baseURL := "http://" + addrs[0] + "/api/v1"
	time.Sleep(100 * time.Millisecond)

	aliceToken := signToken("alice")
	bobToken := signToken("bob")

	log.Println("Retrieving an unstored item, expecting provider fallback")
	var details model.ItemDetails
	do(http.MethodGet, baseURL+"/items/603", "", nil, http.StatusOK, &details)
	wantFallback := model.ItemDetails{Item: model.CatalogItem{
		ExternalId:  "603",
		Title:       "The Matrix",
		ReleaseDate: ptr("1999-03-30"),
		VoteAverage: 8.2,
		MediaType:   model.MediaTypeMovie,
	}}
	if diff := cmp.Diff(wantFallback, details); diff != "" {
		log.Fatalf("get item mismatch (-want +got):\n%s", diff)
	}

	log.Println("Adding the item to alice's list")
	seed := model.ItemSeed{ExternalId: "603", Title: "The Matrix", ReleaseDate: ptr("1999-03-30"), VoteAverage: 8.2, MediaType: model.MediaTypeMovie}
	do(http.MethodPost, baseURL+"/list", aliceToken, seed, http.StatusCreated, nil)

	log.Println("Adding the same item again, expecting a conflict")
	do(http.MethodPost, baseURL+"/list", aliceToken, seed, http.StatusConflict, nil)

	log.Println("Rating the item as alice and bob")
	do(http.MethodPost, baseURL+"/ratings/603", aliceToken, map[string]int{"value": 80}, http.StatusNoContent, nil)
	do(http.MethodPost, baseURL+"/ratings/603", bobToken, map[string]int{"value": 60}, http.StatusNoContent, nil)

	log.Println("Retrieving the stored item, expecting the local aggregate")
	do(http.MethodGet, baseURL+"/items/603", "", nil, http.StatusOK, &details)
	wantStored := model.ItemDetails{
		Item: model.CatalogItem{
			Id:          1,
			ExternalId:  "603",
			Title:       "The Matrix",
			ReleaseDate: ptr("1999-03-30"),
			VoteAverage: 8.2,
			MediaType:   model.MediaTypeMovie,
		},
		Rating:      ptr(70.0),
		RatingCount: 2,
	}
	if diff := cmp.Diff(wantStored, details); diff != "" {
		log.Fatalf("stored item mismatch (-want +got):\n%s", diff)
	}

	log.Println("Retrieving alice's list")
	var entries []model.ListEntryView
	do(http.MethodGet, baseURL+"/list", aliceToken, nil, http.StatusOK, &entries)
	wantEntries := []model.ListEntryView{{Item: wantStored.Item, Rating: ptr(model.RatingValue(80))}}
	if diff := cmp.Diff(wantEntries, entries, cmpopts.IgnoreFields(model.ListEntryView{}, "AddedAt")); diff != "" {
		log.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	log.Println("Searching, expecting partitioned results")
	var page model.SearchPage
	do(http.MethodGet, baseURL+"/search?query=matrix", "", nil, http.StatusOK, &page)
	if len(page.Items) != 1 || len(page.People) != 1 || page.TotalResults != 2 {
		log.Fatalf("search partition mismatch: %d items, %d people, %d total", len(page.Items), len(page.People), page.TotalResults)
	}

	log.Println("Listing popular titles, expecting a degraded placeholder page")
	do(http.MethodGet, baseURL+"/discover/popular", "", nil, http.StatusOK, &page)
	if !page.Degraded || len(page.Items) != 10 || page.TotalPages != 1 {
		log.Fatalf("degraded page mismatch: degraded=%v, %d items, %d pages", page.Degraded, len(page.Items), page.TotalPages)
	}

	log.Println("Removing the item from alice's list twice")
	do(http.MethodDelete, baseURL+"/list/603", aliceToken, nil, http.StatusNoContent, nil)
	do(http.MethodDelete, baseURL+"/list/603", aliceToken, nil, http.StatusNoContent, nil)

	log.Println("Retrieving contributors")
	var contributors []model.Contributor
	do(http.MethodGet, baseURL+"/contributors", "", nil, http.StatusOK, &contributors)
	wantContributors := []model.Contributor{
		{UserId: "alice", ListCount: 0, RatingCount: 1},
		{UserId: "bob", ListCount: 0, RatingCount: 1},
	}
	if diff := cmp.Diff(wantContributors, contributors); diff != "" {
		log.Fatalf("contributors mismatch (-want +got):\n%s", diff)
	}

	log.Println("The integration test execution successful")
}

func startProviderStub() *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 603, "title": "The Matrix", "vote_average": 8.2, "release_date": "1999-03-30",
		})
	})
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"page": 1, "total_pages": 1, "total_results": 2,
			"results": []map[string]any{
				{"id": 603, "title": "The Matrix", "media_type": "movie"},
				{"id": 6384, "name": "Keanu Reeves", "media_type": "person"},
			},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := &http.Server{Addr: providerAddress, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()
	return srv
}

func do(method, url, token string, body any, wantStatus int, out any) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: got status %d, want %d", method, url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("%s %s: decode response: %v", method, url, err)
		}
	}
}

func signToken(username string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": username, "iat": time.Now().Unix()})
	s, err := token.SignedString(testSecret)
	if err != nil {
		panic(err)
	}
	return s
}

func ptr[T any](v T) *T {
	return &v
}
