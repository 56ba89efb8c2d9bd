package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"chatshot-be/internal/dto"
	"chatshot-be/internal/entity"
	"chatshot-be/internal/pkg/avatar"
	"chatshot-be/internal/pkg/logger"
	"chatshot-be/internal/repository/contract"
	"chatshot-be/internal/repository/memory"
	"chatshot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IChatService interface {
	GetState(ctx context.Context, sessionID string) (*dto.WorkingChatResponse, error)
	SetTitle(ctx context.Context, sessionID, title string) error
	NewChat(ctx context.Context, sessionID string) error
	SetEditing(ctx context.Context, sessionID string, index *int) error

	AppendMessage(ctx context.Context, sessionID string, req *dto.AppendMessageRequest) error
	UpdateMessage(ctx context.Context, sessionID string, index int, req *dto.UpdateMessageRequest) error
	DeleteMessage(ctx context.Context, sessionID string, index int) error

	ListSnapshots(ctx context.Context, sessionID string) (*dto.SnapshotListResponse, error)
	SaveSnapshot(ctx context.Context, sessionID, title string) error
	LoadSnapshot(ctx context.Context, sessionID string, index int) error
	DeleteSnapshot(ctx context.Context, sessionID string, index int) error

	GetProfile(ctx context.Context, sessionID string) (*dto.ProfileResponse, error)
	SetProfileName(ctx context.Context, sessionID string, req *dto.SetProfileNameRequest) error
	SetProfileAvatar(ctx context.Context, sessionID, target string, image []byte, crop *avatar.CropRegion) error
}

type chatService struct {
	sessions  *memory.SessionRepository
	stores    contract.StoreRepository
	publisher message.Publisher
	log       logger.ILogger

	// One mutation at a time per session. HTTP handlers may overlap, the
	// working state must not.
	locks sync.Map // sessionID -> *sync.Mutex
}

func NewChatService(
	sessions *memory.SessionRepository,
	stores contract.StoreRepository,
	publisher message.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:  sessions,
		stores:    stores,
		publisher: publisher,
		log:       log,
	}
}

func (s *chatService) withSession(sessionID string, fn func(session *entity.Session) error) error {
	muAny, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	session, found := s.sessions.Get(sessionID)
	if !found {
		return ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return err
	}
	// Re-set to refresh the cache TTL; the session stays alive while in use.
	s.sessions.Save(session)
	return nil
}

func (s *chatService) GetState(ctx context.Context, sessionID string) (*dto.WorkingChatResponse, error) {
	var res *dto.WorkingChatResponse
	err := s.withSession(sessionID, func(session *entity.Session) error {
		res = &dto.WorkingChatResponse{
			Title:        session.Working.Title,
			Messages:     copyMessages(session.Working.Messages),
			EditingIndex: session.EditingIndex,
		}
		return nil
	})
	return res, err
}

func (s *chatService) SetTitle(ctx context.Context, sessionID, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidInput
	}
	return s.withSession(sessionID, func(session *entity.Session) error {
		session.Working.Title = title
		return nil
	})
}

func (s *chatService) NewChat(ctx context.Context, sessionID string) error {
	return s.withSession(sessionID, func(session *entity.Session) error {
		session.Working.Messages = []entity.Message{}
		session.Working.Title = entity.DefaultChatTitle
		session.EditingIndex = nil
		return nil
	})
}

func (s *chatService) SetEditing(ctx context.Context, sessionID string, index *int) error {
	return s.withSession(sessionID, func(session *entity.Session) error {
		if index != nil && (*index < 0 || *index >= len(session.Working.Messages)) {
			return ErrIndexOutOfRange
		}
		session.EditingIndex = index
		return nil
	})
}

func (s *chatService) AppendMessage(ctx context.Context, sessionID string, req *dto.AppendMessageRequest) error {
	role, content, err := parseMessage(req.Role, req.Content)
	if err != nil {
		return err
	}
	return s.withSession(sessionID, func(session *entity.Session) error {
		session.Working.Messages = append(session.Working.Messages, entity.Message{Role: role, Content: content})
		return nil
	})
}

func (s *chatService) UpdateMessage(ctx context.Context, sessionID string, index int, req *dto.UpdateMessageRequest) error {
	role, content, err := parseMessage(req.Role, req.Content)
	if err != nil {
		return err
	}
	return s.withSession(sessionID, func(session *entity.Session) error {
		if index < 0 || index >= len(session.Working.Messages) {
			return ErrIndexOutOfRange
		}
		session.Working.Messages[index] = entity.Message{Role: role, Content: content}
		session.EditingIndex = nil
		return nil
	})
}

func (s *chatService) DeleteMessage(ctx context.Context, sessionID string, index int) error {
	return s.withSession(sessionID, func(session *entity.Session) error {
		if index < 0 || index >= len(session.Working.Messages) {
			return ErrIndexOutOfRange
		}
		session.Working.Messages = append(session.Working.Messages[:index], session.Working.Messages[index+1:]...)

		// A pending edit at or past the removed slot would point at the
		// wrong message after the shift.
		if e := session.EditingIndex; e != nil {
			switch {
			case *e == index:
				session.EditingIndex = nil
			case *e > index:
				repointed := *e - 1
				session.EditingIndex = &repointed
			}
		}
		return nil
	})
}

func (s *chatService) ListSnapshots(ctx context.Context, sessionID string) (*dto.SnapshotListResponse, error) {
	var res *dto.SnapshotListResponse
	err := s.withSession(sessionID, func(session *entity.Session) error {
		summaries := make([]dto.SnapshotSummary, 0, len(session.SavedChats))
		for i, saved := range session.SavedChats {
			summaries = append(summaries, dto.SnapshotSummary{
				Index:        i,
				Title:        saved.Title,
				Date:         saved.Date,
				MessageCount: len(saved.Messages),
			})
		}
		res = &dto.SnapshotListResponse{Snapshots: summaries}
		return nil
	})
	return res, err
}

func (s *chatService) SaveSnapshot(ctx context.Context, sessionID, title string) error {
	title = strings.TrimSpace(title)
	var accountID string
	err := s.withSession(sessionID, func(session *entity.Session) error {
		if title == "" || len(session.Working.Messages) == 0 {
			return ErrInvalidInput
		}

		snapshot := entity.SavedChat{
			Title:     title,
			Date:      time.Now().Format("06-01-02 15:04"),
			Messages:  copyMessages(session.Working.Messages),
			MePic:     session.Profile.MePic,
			OtherPic:  session.Profile.OtherPic,
			MeName:    session.Profile.MeName,
			OtherName: session.Profile.OtherName,
		}
		session.SavedChats = append(session.SavedChats, snapshot)

		if err := s.persist(ctx, session); err != nil {
			// Roll back so a failed save is never reported successful.
			session.SavedChats = session.SavedChats[:len(session.SavedChats)-1]
			return err
		}
		accountID = session.AccountId
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(events.TypeChatSaved, map[string]interface{}{
		"account_id": accountID,
		"title":      title,
	})
	return nil
}

func (s *chatService) LoadSnapshot(ctx context.Context, sessionID string, index int) error {
	return s.withSession(sessionID, func(session *entity.Session) error {
		if index < 0 || index >= len(session.SavedChats) {
			return ErrIndexOutOfRange
		}
		saved := session.SavedChats[index]

		// Full overwrite of the working state, never a partial merge.
		session.Working.Messages = copyMessages(saved.Messages)
		session.Working.Title = saved.Title
		session.Profile = entity.ProfileSettings{
			MeName:    saved.MeName,
			OtherName: saved.OtherName,
			MePic:     saved.MePic,
			OtherPic:  saved.OtherPic,
		}
		session.EditingIndex = nil
		return nil
	})
}

func (s *chatService) DeleteSnapshot(ctx context.Context, sessionID string, index int) error {
	var accountID, title string
	err := s.withSession(sessionID, func(session *entity.Session) error {
		if index < 0 || index >= len(session.SavedChats) {
			return ErrIndexOutOfRange
		}
		removed := session.SavedChats[index]
		backup := session.SavedChats
		session.SavedChats = append(append([]entity.SavedChat{}, backup[:index]...), backup[index+1:]...)

		if err := s.persist(ctx, session); err != nil {
			session.SavedChats = backup
			return err
		}
		accountID = session.AccountId
		title = removed.Title
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(events.TypeChatDeleted, map[string]interface{}{
		"account_id": accountID,
		"title":      title,
	})
	return nil
}

func (s *chatService) GetProfile(ctx context.Context, sessionID string) (*dto.ProfileResponse, error) {
	var res *dto.ProfileResponse
	err := s.withSession(sessionID, func(session *entity.Session) error {
		res = &dto.ProfileResponse{
			MeName:    session.Profile.MeName,
			OtherName: session.Profile.OtherName,
			MePic:     session.Profile.MePic,
			OtherPic:  session.Profile.OtherPic,
		}
		return nil
	})
	return res, err
}

func (s *chatService) SetProfileName(ctx context.Context, sessionID string, req *dto.SetProfileNameRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrInvalidInput
	}
	return s.withSession(sessionID, func(session *entity.Session) error {
		backup := session.Profile
		switch req.Target {
		case "me":
			session.Profile.MeName = name
		case "other":
			session.Profile.OtherName = name
		default:
			return ErrInvalidInput
		}
		if err := s.persist(ctx, session); err != nil {
			session.Profile = backup
			return err
		}
		return nil
	})
}

func (s *chatService) SetProfileAvatar(ctx context.Context, sessionID, target string, image []byte, crop *avatar.CropRegion) error {
	if target != "me" && target != "other" {
		return ErrInvalidInput
	}
	dataURI, err := avatar.Process(image, crop)
	if err != nil {
		s.log.Debug("profile", "avatar processing rejected upload", map[string]interface{}{"error": err.Error()})
		return ErrInvalidInput
	}
	return s.withSession(sessionID, func(session *entity.Session) error {
		backup := session.Profile
		if target == "me" {
			session.Profile.MePic = dataURI
		} else {
			session.Profile.OtherPic = dataURI
		}
		if err := s.persist(ctx, session); err != nil {
			session.Profile = backup
			return err
		}
		return nil
	})
}

// persist writes the session's durable state (saved chats + profile) back to
// the account store file, replacing it wholesale.
func (s *chatService) persist(ctx context.Context, session *entity.Session) error {
	store := &entity.AccountStore{
		SavedChats: session.SavedChats,
		MePic:      session.Profile.MePic,
		OtherPic:   session.Profile.OtherPic,
		MeName:     session.Profile.MeName,
		OtherName:  session.Profile.OtherName,
	}
	if err := s.stores.Persist(ctx, session.AccountKey, store); err != nil {
		s.log.Error("persistence", "failed to write account store", map[string]interface{}{
			"path":  s.stores.Path(session.AccountKey),
			"error": err.Error(),
		})
		return err
	}
	return nil
}

func (s *chatService) publish(eventType string, data map[string]interface{}) {
	if err := events.Publish(s.publisher, events.New(eventType, data)); err != nil {
		s.log.Warn("chat", "failed to publish event", map[string]interface{}{"error": err.Error()})
	}
}

func parseMessage(role, content string) (entity.MessageRole, string, error) {
	if strings.TrimSpace(content) == "" {
		return "", "", ErrInvalidInput
	}
	r := entity.MessageRole(role)
	if r != entity.RoleMe && r != entity.RoleOther {
		return "", "", ErrInvalidInput
	}
	return r, content, nil
}

func copyMessages(messages []entity.Message) []entity.Message {
	out := make([]entity.Message, len(messages))
	copy(out, messages)
	return out
}
