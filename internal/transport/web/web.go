package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/tools"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
)

type dispatcher interface {
	Handle(ctx context.Context, text string) *tools.Reply
	Call(ctx context.Context, name string, text string) (*tools.Reply, error)
}

type Server struct {
	srv        *http.Server
	router     *http.ServeMux
	l          *logger.Logger
	conf       Conf
	dispatcher dispatcher
	validate   *validator.Validate
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              int
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	AllowedOrigins    []string
}

func New(ctx context.Context, conf Conf, dispatcher dispatcher) (*Server, error) {
	mux := http.NewServeMux()

	cors := handlers.CORS(
		handlers.AllowedOrigins(conf.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", idempotencyKeyHeader, requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           cors(mux),
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:        srv,
		router:     mux,
		l:          conf.L,
		conf:       conf,
		dispatcher: dispatcher,
		validate:   validator.New(),
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
