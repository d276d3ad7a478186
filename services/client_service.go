package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/models"
	"servic-backend/policy"
	"servic-backend/services/interfaces"
	"servic-backend/utils"
)

type ClientInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// ClientService maintains the contact list. Staff only.
type ClientService struct {
	clients interfaces.IClientRepository
	log     logrus.FieldLogger
}

func NewClientService(clients interfaces.IClientRepository, log logrus.FieldLogger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

func (s *ClientService) List(ctx context.Context, actor models.User) ([]models.Client, error) {
	if !policy.IsStaff(actor) {
		return nil, forbidden("list clients")
	}
	return s.clients.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, actor models.User, id uuid.UUID) (models.Client, error) {
	if !policy.IsStaff(actor) {
		return models.Client{}, forbidden("view clients")
	}
	c, err := s.clients.GetByID(ctx, id)
	return c, lookupError(err, "client")
}

func (s *ClientService) Create(ctx context.Context, actor models.User, in ClientInput) (models.Client, error) {
	if !policy.IsStaff(actor) {
		return models.Client{}, forbidden("create clients")
	}
	c := models.Client{}
	if err := applyClient(&c, in); err != nil {
		return models.Client{}, err
	}
	if err := s.clients.Create(ctx, &c); err != nil {
		return models.Client{}, err
	}
	s.log.WithFields(logrus.Fields{"client_id": c.ID, "actor_id": actor.ID}).Info("client created")
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, actor models.User, id uuid.UUID, in ClientInput) (models.Client, error) {
	if !policy.IsStaff(actor) {
		return models.Client{}, forbidden("update clients")
	}
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return models.Client{}, lookupError(err, "client")
	}
	if err := applyClient(&c, in); err != nil {
		return models.Client{}, err
	}
	if err := s.clients.Update(ctx, &c); err != nil {
		return models.Client{}, err
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, actor models.User, id uuid.UUID) error {
	if !policy.IsStaff(actor) {
		return forbidden("delete clients")
	}
	return lookupError(s.clients.Delete(ctx, id), "client")
}

func applyClient(c *models.Client, in ClientInput) error {
	first := strings.TrimSpace(in.FirstName)
	if first == "" {
		return validationError("first name is required")
	}
	last := strings.TrimSpace(in.LastName)
	if tooLong(first, models.ClientNameMaxLen) || tooLong(last, models.ClientNameMaxLen) {
		return validationError("names must be at most %d characters", models.ClientNameMaxLen)
	}
	if !utils.ValidatePhone(in.Phone) {
		return validationError("invalid phone number format")
	}
	c.FirstName = first
	c.LastName = last
	c.Phone = utils.NormalizePhone(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	return nil
}
