package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mentora-labs/mentora-api/internal/models"
)

// The engine's contract is in-process; callers that do not wire a database
// use these collection-backed repositories. They assume a single logical
// writer and preserve insertion order, which the filter engine relies on for
// deterministic output. The mutex only guards against interleaved reads from
// projection goroutines, not multi-writer deployments.

// MemoryAssignmentRepository keeps assignments in an ordered in-memory
// collection.
type MemoryAssignmentRepository struct {
	mu          sync.RWMutex
	assignments []models.Assignment
}

// NewMemoryAssignmentRepository builds an empty in-memory assignment store.
func NewMemoryAssignmentRepository() *MemoryAssignmentRepository {
	return &MemoryAssignmentRepository{}
}

// List returns assignments in insertion order.
func (m *MemoryAssignmentRepository) List(_ context.Context) ([]models.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Assignment(nil), m.assignments...), nil
}

// GetByID returns the assignment with the given id.
func (m *MemoryAssignmentRepository) GetByID(_ context.Context, id string) (models.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, assignment := range m.assignments {
		if assignment.ID == id {
			return assignment, nil
		}
	}
	return models.Assignment{}, gorm.ErrRecordNotFound
}

// Create appends the assignment to the collection.
func (m *MemoryAssignmentRepository) Create(_ context.Context, assignment *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	m.assignments = append(m.assignments, *assignment)
	return nil
}

// Update overwrites the stored assignment with the same id in place.
func (m *MemoryAssignmentRepository) Update(_ context.Context, assignment *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assignments {
		if m.assignments[i].ID == assignment.ID {
			assignment.CreatedAt = m.assignments[i].CreatedAt
			assignment.UpdatedAt = time.Now()
			m.assignments[i] = *assignment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// MemorySubmissionRepository keeps submissions in an ordered in-memory
// collection.
type MemorySubmissionRepository struct {
	mu          sync.RWMutex
	submissions []models.Submission
}

// NewMemorySubmissionRepository builds an empty in-memory submission store.
func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{}
}

// List returns submissions matching the filter in insertion order.
func (m *MemorySubmissionRepository) List(_ context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]models.Submission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		if filter.AssignmentID != "" && submission.AssignmentID != filter.AssignmentID {
			continue
		}
		if filter.StudentName != "" && submission.StudentName != filter.StudentName {
			continue
		}
		if filter.Status != "" && submission.Status != filter.Status {
			continue
		}
		results = append(results, submission)
	}
	return results, nil
}

// GetByID returns the submission with the given id.
func (m *MemorySubmissionRepository) GetByID(_ context.Context, id string) (models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, submission := range m.submissions {
		if submission.ID == id {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

// Create appends the submission to the collection.
func (m *MemorySubmissionRepository) Create(_ context.Context, submission *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	submission.CreatedAt = now
	submission.UpdatedAt = now
	m.submissions = append(m.submissions, *submission)
	return nil
}

// Update overwrites the stored submission with the same id in place.
func (m *MemorySubmissionRepository) Update(_ context.Context, submission *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.submissions {
		if m.submissions[i].ID == submission.ID {
			submission.CreatedAt = m.submissions[i].CreatedAt
			submission.UpdatedAt = time.Now()
			m.submissions[i] = *submission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// MemoryModuleRepository serves a fixed module/topic hierarchy.
type MemoryModuleRepository struct {
	modules []models.Module
}

// NewMemoryModuleRepository builds a module reader over the given hierarchy.
func NewMemoryModuleRepository(modules []models.Module) *MemoryModuleRepository {
	return &MemoryModuleRepository{modules: modules}
}

// List returns all modules.
func (m *MemoryModuleRepository) List(_ context.Context) ([]models.Module, error) {
	return append([]models.Module(nil), m.modules...), nil
}

// GetByID returns the module with the given id.
func (m *MemoryModuleRepository) GetByID(_ context.Context, id string) (models.Module, error) {
	for _, module := range m.modules {
		if module.ID == id {
			return module, nil
		}
	}
	return models.Module{}, gorm.ErrRecordNotFound
}

// MemoryStudentRepository serves a fixed classroom roster.
type MemoryStudentRepository struct {
	mu       sync.RWMutex
	students []models.Student
}

// NewMemoryStudentRepository builds a roster reader over the given students.
func NewMemoryStudentRepository(students []models.Student) *MemoryStudentRepository {
	return &MemoryStudentRepository{students: students}
}

// ListNamesByClassroom returns student names in enrollment order.
func (m *MemoryStudentRepository) ListNamesByClassroom(_ context.Context, classroomID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.students))
	for _, student := range m.students {
		if classroomID == "" || strings.EqualFold(student.ClassroomID, classroomID) {
			names = append(names, student.Name)
		}
	}
	return names, nil
}

// Create appends a student to the roster.
func (m *MemoryStudentRepository) Create(_ context.Context, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	student.ID = uint(len(m.students) + 1)
	m.students = append(m.students, *student)
	return nil
}
