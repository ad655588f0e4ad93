package main

import (
    "context"
    "math/rand"
    "net/http"
    "os"
    "os/signal"
    "time"

    "github.com/joho/godotenv"
    "github.com/rs/cors"
    "go.uber.org/zap"

    "quizroom-system/internal/auth"
    "quizroom-system/internal/janitor"
    "quizroom-system/internal/models"
    "quizroom-system/internal/quiz"
    "quizroom-system/internal/room"
    "quizroom-system/pkg/cache"
    "quizroom-system/pkg/database"
    "quizroom-system/pkg/logger"
    "quizroom-system/pkg/websocket"

    "github.com/gorilla/mux"
)

func main() {
    log, err := logger.New()
    if err != nil {
        panic(err)
    }
    defer log.Sync()

    // Load environment variables
    if err := godotenv.Load(); err != nil {
        log.Warn(".env file not found")
    }

    // Initialize database
    dbConfig := &database.Config{
        Host:     os.Getenv("DB_HOST"),
        Port:     os.Getenv("DB_PORT"),
        User:     os.Getenv("DB_USER"),
        Password: os.Getenv("DB_PASSWORD"),
        DBName:   os.Getenv("DB_NAME"),
        SSLMode:  os.Getenv("DB_SSLMODE"),
    }

    db, err := database.NewPostgresDB(dbConfig)
    if err != nil {
        log.Fatal("failed to connect to database", zap.Error(err))
    }
    err = db.AutoMigrate(
        &models.User{},
        &models.Quiz{},
        &models.Question{},
        &models.Option{},
        &models.Room{},
        &models.Player{},
        &models.QuizPlay{},
    )
    if err != nil {
        log.Fatal("failed to migrate database", zap.Error(err))
    }

    // Initialize Redis cache
    redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

    // Initialize WebSocket hub (the room change feed)
    wsHub := websocket.NewHub(log)
    go wsHub.Run()

    // Initialize repositories
    authRepo := auth.NewRepository(db, log)
    quizRepo := quiz.NewRepository(db, log)
    roomRepo := room.NewRepository(db, log)

    // Initialize services
    jwtSecret := os.Getenv("JWT_SECRET")
    authService := auth.NewService(authRepo, jwtSecret)
    quizService := quiz.NewService(quizRepo, redisCache, log)
    roomService := room.NewService(roomRepo, redisCache, wsHub, quizRepo, log)

    // Room cleanup jobs, invalidating cached rows for swept rooms
    janitor.Start(db, redisCache, log)

    // Initialize handlers
    authHandler := auth.NewHandler(authService)
    quizHandler := quiz.NewHandler(quizService)
    roomHandler := room.NewHandler(roomService)

    // Setup router
    router := mux.NewRouter()
    router.Use(logger.RequestLogger(log))

    corsMiddleware := cors.New(cors.Options{
        AllowedOrigins:   []string{"http://localhost:3000"},
        AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
        AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
        ExposedHeaders:   []string{"Content-Length"},
        AllowCredentials: true,
        MaxAge:           300,
    })
    handler := corsMiddleware.Handler(router)

    // Auth routes - no JWT required
    router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
    router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

    // API routes - JWT required
    apiRouter := router.PathPrefix("/api").Subrouter()
    apiRouter.Use(auth.JWTMiddleware(jwtSecret))

    apiRouter.HandleFunc("/rooms", roomHandler.CreateRoom).Methods("POST", "OPTIONS")
    apiRouter.HandleFunc("/rooms/join", roomHandler.JoinRoom).Methods("POST", "OPTIONS")
    apiRouter.HandleFunc("/rooms/{roomID}", roomHandler.GetRoom).Methods("GET", "OPTIONS")
    apiRouter.HandleFunc("/rooms/{roomID}/start", roomHandler.StartGame).Methods("POST")
    apiRouter.HandleFunc("/rooms/{roomID}/finish", roomHandler.FinishGame).Methods("POST")
    apiRouter.HandleFunc("/rooms/{roomID}/players", roomHandler.GetPlayers).Methods("GET", "OPTIONS")
    apiRouter.HandleFunc("/rooms/{roomID}/players", roomHandler.LeaveRoom).Methods("DELETE")
    apiRouter.HandleFunc("/rooms/{roomID}/leaderboard", roomHandler.GetLeaderboard).Methods("GET", "OPTIONS")
    apiRouter.HandleFunc("/rooms/{roomID}/complete", roomHandler.CompleteQuiz).Methods("POST")
    apiRouter.HandleFunc("/players/{playerID}/ready", roomHandler.SetReady).Methods("PUT", "OPTIONS")

    apiRouter.HandleFunc("/quiz/my-quizzes", quizHandler.GetMyQuizzes).Methods("GET")
    apiRouter.HandleFunc("/quizzes", quizHandler.CreateQuiz).Methods("POST", "OPTIONS")
    apiRouter.HandleFunc("/quizzes/{quizCode}", quizHandler.GetQuiz).Methods("GET", "OPTIONS")
    apiRouter.HandleFunc("/plays", quizHandler.RecordPlay).Methods("POST", "OPTIONS")

    // WebSocket endpoint (change feed, one subscription per room)
    router.HandleFunc("/ws/rooms/{roomID}", wsHub.HandleWebSocket)

    // Initialize random seed for code generation
    rand.Seed(time.Now().UnixNano())

    srv := &http.Server{
        Addr:         ":8080",
        Handler:      handler,
        ReadTimeout:  15 * time.Second,
        WriteTimeout: 15 * time.Second,
    }

    // Start server in a goroutine
    go func() {
        log.Info("server starting", zap.String("addr", srv.Addr))
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatal("failed to start server", zap.Error(err))
        }
    }()

    // Graceful shutdown setup
    c := make(chan os.Signal, 1)
    signal.Notify(c, os.Interrupt)
    <-c

    ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer cancel()

    if err := srv.Shutdown(ctx); err != nil {
        log.Error("server forced to shutdown", zap.Error(err))
    }

    log.Info("server shutdown gracefully")
}
