package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/GQAdonis/goal-app/app/config"
	"github.com/GQAdonis/goal-app/app/service/chat"

	"github.com/elliotchance/pie/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

type TurnHandler interface {
	HandleTurn(ctx context.Context, messages []chat.Message, state chat.ConversationState) (string, *chat.StateDelta, error)
}

var _ do.Shutdownable = (*Server)(nil)

type Server struct {
	cfg    *config.Config
	engine TurnHandler
	app    *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	return newServer(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*chat.Service](di),
	), nil
}

func newServer(cfg *config.Config, engine TurnHandler) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Post("/api/chat", s.handleTurn)
	s.app = app

	return s
}

func (s *Server) Run() error {
	return s.app.Listen(s.cfg.Server.Listen)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleTurn(c *fiber.Ctx) error {
	var req chat.TurnRequest

	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	validRoles := pie.All(req.Messages, func(msg chat.Message) bool {
		return msg.Role == chat.RoleUser || msg.Role == chat.RoleAssistant
	})
	if !validRoles {
		return badRequest(c, "message roles must be user or assistant")
	}

	start := time.Now()

	reply, delta, err := s.engine.HandleTurn(c.UserContext(), req.Messages, req.ConversationState)
	if err != nil {
		slog.Error("Turn failed",
			"step", req.ConversationState.CurrentStep,
			"error", err,
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	slog.Info("Processed turn",
		"step", req.ConversationState.CurrentStep,
		"messages", len(req.Messages),
		"duration", time.Since(start),
	)

	return c.JSON(chat.TurnResponse{
		Message:  reply,
		NewState: delta,
	})
}

func badRequest(c *fiber.Ctx, reason string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": reason,
	})
}
