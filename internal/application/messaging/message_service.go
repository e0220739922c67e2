package messaging

import (
	"context"
	"errors"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/messaging"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MessageService handles direct messaging between clinicians and
// patients. Every exchange passes the relationship gate: a psychologist
// may message users who are their patients, a patient may message the
// psychologist who owns their record or treats them in an appointment.
type MessageService struct {
	messageRepo     messaging.MessageRepository
	userRepo        identity.UserRepository
	patientRepo     clinic.PatientRepository
	appointmentRepo scheduling.AppointmentRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo messaging.MessageRepository,
	userRepo identity.UserRepository,
	patientRepo clinic.PatientRepository,
	appointmentRepo scheduling.AppointmentRepository,
) *MessageService {
	return &MessageService{
		messageRepo:     messageRepo,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Send delivers a message to a peer the principal is allowed to reach
func (s *MessageService) Send(ctx context.Context, principal identity.Principal, req SendMessageRequest) (*MessageResponse, error) {
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid receiver id")
	}

	receiver, err := s.userRepo.FindByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authorize(ctx, principal, receiver)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, shared.NewDomainError("FORBIDDEN", "No clinical relationship with this user")
	}

	message, err := messaging.NewMessage(principal.ID, receiverID, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	resp := ToMessageResponse(message)
	return &resp, nil
}

// Conversation returns the full exchange with a peer in chronological
// order. The same relationship gate as Send applies, so a caller cannot
// read exchanges with users outside their clinical circle. Reading
// the conversation marks every message the peer sent to the principal
// as read.
func (s *MessageService) Conversation(ctx context.Context, principal identity.Principal, peerID uuid.UUID) ([]MessageResponse, error) {
	peer, err := s.userRepo.FindByID(ctx, peerID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authorize(ctx, principal, peer)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, shared.NewDomainError("FORBIDDEN", "No clinical relationship with this user")
	}

	messages, err := s.messageRepo.FindConversation(ctx, principal.ID, peerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.messageRepo.MarkConversationRead(ctx, principal.ID, peerID); err != nil {
		return nil, err
	}

	responses := make([]MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToMessageResponse(m)
		if m.ReceiverID == principal.ID {
			responses[i].Read = true
		}
	}
	return responses, nil
}

// Conversations returns the principal's inbox
func (s *MessageService) Conversations(ctx context.Context, principal identity.Principal) ([]ConversationResponse, error) {
	summaries, err := s.messageRepo.ListConversations(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]ConversationResponse, 0, len(summaries))
	for _, summary := range summaries {
		resp := ConversationResponse{
			PeerID:      summary.PeerID.String(),
			UnreadCount: summary.UnreadCount,
		}
		if summary.LastMessage != nil {
			last := ToMessageResponse(summary.LastMessage)
			resp.LastMessage = &last
		}
		if peer, perr := s.userRepo.FindByID(ctx, summary.PeerID); perr == nil {
			resp.PeerName = peer.Name
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// UnreadCount returns how many unread messages await the principal
func (s *MessageService) UnreadCount(ctx context.Context, principal identity.Principal) (*UnreadCountResponse, error) {
	count, err := s.messageRepo.CountUnread(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}

// MarkRead marks a single message as read. Only the receiver may do so;
// a message the principal cannot see is reported as not found.
func (s *MessageService) MarkRead(ctx context.Context, principal identity.Principal, messageID uuid.UUID) (*MessageResponse, error) {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != principal.ID && message.ReceiverID != principal.ID {
		return nil, shared.ErrNotFound
	}

	if err := message.MarkRead(principal.ID); err != nil {
		return nil, err
	}
	if err := s.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}

	resp := ToMessageResponse(message)
	return &resp, nil
}

// Contacts lists the users the principal is allowed to message
func (s *MessageService) Contacts(ctx context.Context, principal identity.Principal) ([]ContactResponse, error) {
	if principal.IsPsychologist() {
		return s.psychologistContacts(ctx, principal.ID)
	}
	return s.patientContacts(ctx, principal)
}

func (s *MessageService) psychologistContacts(ctx context.Context, psychologistID uuid.UUID) ([]ContactResponse, error) {
	patients, err := s.patientRepo.FindByPsychologist(ctx, psychologistID)
	if err != nil {
		return nil, err
	}

	contacts := []ContactResponse{}
	seen := make(map[uuid.UUID]struct{})
	for _, patient := range patients {
		user, uerr := s.userRepo.FindByEmail(ctx, patient.Email)
		if uerr != nil {
			// Patient records without a user account are unreachable
			// through messaging.
			if errors.Is(uerr, shared.ErrNotFound) {
				continue
			}
			return nil, uerr
		}
		if _, ok := seen[user.ID]; ok {
			continue
		}
		seen[user.ID] = struct{}{}
		contacts = append(contacts, toContact(user))
	}
	return contacts, nil
}

func (s *MessageService) patientContacts(ctx context.Context, principal identity.Principal) ([]ContactResponse, error) {
	contacts := []ContactResponse{}
	seen := make(map[uuid.UUID]struct{})

	patient, err := s.patientRepo.FindByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return contacts, nil
		}
		return nil, err
	}

	psychologistIDs := []uuid.UUID{}
	if patient.PsychologistID != nil {
		psychologistIDs = append(psychologistIDs, *patient.PsychologistID)
	}
	appointments, err := s.appointmentRepo.FindByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	for _, appt := range appointments {
		if appt.Status == scheduling.StatusCanceled {
			continue
		}
		psychologistIDs = append(psychologistIDs, appt.PsychologistID)
	}

	for _, id := range psychologistIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		user, uerr := s.userRepo.FindByID(ctx, id)
		if uerr != nil {
			if errors.Is(uerr, shared.ErrNotFound) {
				continue
			}
			return nil, uerr
		}
		contacts = append(contacts, toContact(user))
	}
	return contacts, nil
}

// authorize evaluates the messaging gate between the principal and the
// receiver.
func (s *MessageService) authorize(ctx context.Context, principal identity.Principal, receiver *identity.User) (bool, error) {
	if principal.IsPsychologist() {
		// The receiver must be one of the psychologist's patients.
		exists, err := s.patientRepo.ExistsByEmailForPsychologist(ctx, receiver.Email, principal.ID)
		if err != nil {
			return false, err
		}
		return exists, nil
	}

	if !receiver.IsPsychologist() {
		return false, nil
	}

	// Ownership of the patient record grants the relationship.
	exists, err := s.patientRepo.ExistsByEmailForPsychologist(ctx, principal.Email, receiver.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	// Otherwise a shared appointment does, even a canceled one.
	return s.appointmentRepo.HasAppointmentBetween(ctx, principal.ID, receiver.ID)
}

func toContact(user *identity.User) ContactResponse {
	return ContactResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
