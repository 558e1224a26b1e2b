package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/notablehq/notable-backend/internal/dto"
	"github.com/notablehq/notable-backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNoteNotFound covers both a missing note and a note owned by
	// someone else; callers cannot tell the two apart.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoteFieldsRequired rejects note creation before anything is
	// written.
	ErrNoteFieldsRequired = errors.New("title and content are required")
)

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// List returns all notes owned by the user.
func (s *NoteService) List(userID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Get returns the note only if it belongs to the user.
func (s *NoteService) Get(noteID int, userID uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := s.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if err != nil {
		return nil, ErrNoteNotFound
	}
	return &note, nil
}

func (s *NoteService) Create(userID uuid.UUID, req *dto.CreateNoteRequest) (*models.Note, error) {
	if req.Title == "" || req.Content == "" {
		return nil, ErrNoteFieldsRequired
	}
	note := models.Note{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

// Delete removes the note only if it belongs to the user.
func (s *NoteService) Delete(noteID int, userID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", noteID, userID).Delete(&models.Note{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
