package main

import (
	auth "Conduit/internal/auth"
	export "Conduit/internal/calc/export"
	importer "Conduit/internal/calc/importer"
	pipe "Conduit/internal/calc/pipe"
	recommend "Conduit/internal/calc/recommend"
	report "Conduit/internal/calc/report"
	section "Conduit/internal/calc/section"
	sweep "Conduit/internal/calc/sweep"
	uplift "Conduit/internal/calc/uplift"
	presets "Conduit/internal/presets"
	profile "Conduit/internal/profile"
	repo "Conduit/internal/repo"
	runs "Conduit/internal/runs"
	"context"
	"database/sql"

	"encoding/json"
	"fmt"
	"io/fs"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // test server, no domain yet
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresUserDB(db)
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	// Load TOKEN_KEY from environment
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	profileH := &profile.ProfileHandler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")

	pipeH := &pipe.Handler{Runs: userRepo}
	exportH := &export.Handler{}
	reportH := &report.Handler{}
	importH := &importer.Handler{}
	sweepH := &sweep.Handler{}
	recommendH := &recommend.Handler{}
	upliftH := &uplift.Handler{}
	sectionH := &section.Handler{}
	presetsH := &presets.Handler{Repo: userRepo}
	runsH := &runs.Handler{Repo: userRepo}

	secureApi.HandleFunc("/tools/pipe/check", pipeH.Check).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/export", exportH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/report", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/import", importH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/sweep", sweepH.Sweep).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/recommend", recommendH.Recommend).Methods("POST")
	secureApi.HandleFunc("/tools/uplift/calc", upliftH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/section/calc", sectionH.Calc).Methods("POST")

	secureApi.HandleFunc("/presets", presetsH.Save).Methods("POST")
	secureApi.HandleFunc("/presets", presetsH.List).Methods("GET")
	secureApi.HandleFunc("/presets/{id:[0-9]+}", presetsH.Delete).Methods("DELETE")
	secureApi.HandleFunc("/runs", runsH.List).Methods("GET")

	secureApi.HandleFunc("/docs/list", func(w http.ResponseWriter, r *http.Request) {
		type Doc struct {
			Name string `json:"name"`
			Path string `json:"path"`
		}
		var docs []Doc
		fs.WalkDir(os.DirFS("./docs"), ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			docs = append(docs, Doc{Name: d.Name(), Path: path})
			return nil
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(docs)
	}).Methods("GET")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	profileFileServer := http.FileServer(http.Dir("./static/profile"))
	mux.Handle("/profile/{id:[0-9]+}", authEnv.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/profile/index.html")
	})))
	mux.PathPrefix("/profile/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/profile", profileFileServer)))
	mux.PathPrefix("/docs/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/docs", http.FileServer(http.Dir("./docs")))))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)

}
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":443"
	}
	log.Printf("Starting server on %s", addr)
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")
	fmt.Println("Closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
