package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/gravadigital/community-api/internal/domain/attendance"
	"github.com/gravadigital/community-api/internal/domain/birthday"
	"github.com/gravadigital/community-api/internal/domain/calendar"
	"github.com/gravadigital/community-api/internal/domain/common"
	"github.com/gravadigital/community-api/internal/domain/event"
	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/validation"
)

// ErrInvalidID se devuelve cuando un identificador no es un UUID
var ErrInvalidID = errors.New("invalid identifier")

// EventService maneja la lógica de negocio de eventos
type EventService struct {
	eventRepo event.Repository
	clock     calendar.Clock
}

// NewEventService crea una nueva instancia del servicio de eventos
func NewEventService(eventRepo event.Repository, clock calendar.Clock) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		clock:     clock,
	}
}

// ListEvents obtiene los eventos; con upcomingOnly se omiten los terminados
func (s *EventService) ListEvents(ctx context.Context, upcomingOnly bool, page common.Page) ([]*event.Event, error) {
	var from time.Time
	if upcomingOnly {
		from = s.clock.Now()
	}
	return s.eventRepo.List(ctx, from, page)
}

// GetEventByID obtiene un evento por su ID
func (s *EventService) GetEventByID(ctx context.Context, id string) (*event.Event, error) {
	if err := validation.ValidateUUID(id, "event_id"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return s.eventRepo.GetByID(ctx, id)
}

// AttendanceService une el motor de RSVP con el catálogo de eventos
type AttendanceService struct {
	events *EventService
	engine *attendance.Engine
}

// NewAttendanceService crea una nueva instancia del servicio de asistencia
func NewAttendanceService(events *EventService, engine *attendance.Engine) *AttendanceService {
	return &AttendanceService{
		events: events,
		engine: engine,
	}
}

// Load devuelve la vista de asistencia del usuario actual para un evento
func (s *AttendanceService) Load(ctx context.Context, eventID string) (attendance.View, error) {
	if _, err := s.events.GetEventByID(ctx, eventID); err != nil {
		return attendance.View{}, err
	}
	_, view := s.engine.Load(ctx, eventID)
	return view, nil
}

// Toggle aplica el cambio de RSVP. La vista devuelta es siempre la que el
// cliente debe mostrar, también cuando hay error.
func (s *AttendanceService) Toggle(ctx context.Context, eventID string, status attendance.Status) (attendance.View, error) {
	if _, err := s.events.GetEventByID(ctx, eventID); err != nil {
		return attendance.View{}, err
	}
	tracker, _ := s.engine.Load(ctx, eventID)
	return tracker.Toggle(ctx, status)
}

// AvatarResolver convierte avatar_url en una URL descargable
type AvatarResolver interface {
	Resolve(ctx context.Context, raw string) string
}

// ProjectionObserver recibe el tamaño de cada proyección
type ProjectionObserver interface {
	ProjectionSize(n int)
}

// BirthdayService maneja la lógica de la vista de cumpleaños
type BirthdayService struct {
	profiles birthday.ProfileSource
	avatars  AvatarResolver
	observer ProjectionObserver
	clock    calendar.Clock
	locale   language.Tag
	log      *log.Logger
}

// NewBirthdayService crea una nueva instancia del servicio de cumpleaños.
// avatars y observer pueden ser nil.
func NewBirthdayService(profiles birthday.ProfileSource, avatars AvatarResolver, observer ProjectionObserver, clock calendar.Clock, locale language.Tag) *BirthdayService {
	return &BirthdayService{
		profiles: profiles,
		avatars:  avatars,
		observer: observer,
		clock:    clock,
		locale:   locale,
		log:      logger.Service("birthday"),
	}
}

// Now devuelve el instante que define "hoy"
func (s *BirthdayService) Now() time.Time {
	return s.clock.Now()
}

// Project lee el padrón y calcula la proyección de cumpleaños
func (s *BirthdayService) Project(ctx context.Context) ([]birthday.Profile, error) {
	raw, err := s.profiles.ListWithBirthday(ctx)
	if err != nil {
		s.log.Error("Failed to load roster", "error", err)
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	profiles := birthday.ProjectWithLocale(raw, s.clock.Now(), s.locale)

	if s.avatars != nil {
		for i := range profiles {
			profiles[i].AvatarURL = s.avatars.Resolve(ctx, profiles[i].AvatarURL)
		}
	}
	if s.observer != nil {
		s.observer.ProjectionSize(len(profiles))
	}

	s.log.Debug("Birthday projection built", "roster", len(raw), "projected", len(profiles))
	return profiles, nil
}

// Buckets agrupa la proyección para la página; month nil significa el mes actual
func (s *BirthdayService) Buckets(ctx context.Context, month *int) (birthday.Buckets, error) {
	profiles, err := s.Project(ctx)
	if err != nil {
		return birthday.Buckets{}, err
	}

	m := int(s.clock.Now().Month()) - 1
	if month != nil {
		m = *month
	}
	return birthday.Bucket(profiles, m), nil
}

// ParseLocale interpreta BIRTHDAY_LOCALE, usando inglés si no es válido
func ParseLocale(raw string) language.Tag {
	tag, err := language.Parse(raw)
	if err != nil {
		return language.English
	}
	return tag
}

// LoadLocation interpreta BIRTHDAY_TIMEZONE; "Local" o vacío usa la zona del proceso
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", name, err)
	}
	return loc, nil
}
