package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// User model related methods.
	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)
	UpdateUser(ctx context.Context, update *UpdateUser) (*User, error)
	DeleteUser(ctx context.Context, delete *DeleteUser) error

	// Teacher model related methods.
	CreateTeacher(ctx context.Context, create *Teacher) (*Teacher, error)
	ListTeachers(ctx context.Context, find *FindTeacher) ([]*Teacher, error)
	UpdateTeacher(ctx context.Context, update *UpdateTeacher) (*Teacher, error)
	DeleteTeacher(ctx context.Context, delete *DeleteTeacher) error

	// Student model related methods.
	CreateStudent(ctx context.Context, create *Student) (*Student, error)
	ListStudents(ctx context.Context, find *FindStudent) ([]*Student, error)
	UpdateStudent(ctx context.Context, update *UpdateStudent) (*Student, error)
	DeleteStudent(ctx context.Context, delete *DeleteStudent) error

	// Subject model related methods.
	CreateSubject(ctx context.Context, create *Subject) (*Subject, error)
	ListSubjects(ctx context.Context, find *FindSubject) ([]*Subject, error)
	UpdateSubject(ctx context.Context, update *UpdateSubject) (*Subject, error)
	DeleteSubject(ctx context.Context, delete *DeleteSubject) error

	// Section model related methods.
	CreateSection(ctx context.Context, create *Section) (*Section, error)
	ListSections(ctx context.Context, find *FindSection) ([]*Section, error)
	UpdateSection(ctx context.Context, update *UpdateSection) (*Section, error)
	DeleteSection(ctx context.Context, delete *DeleteSection) error

	// Schedule model related methods.
	CreateSchedule(ctx context.Context, create *Schedule) (*Schedule, error)
	ListSchedules(ctx context.Context, find *FindSchedule) ([]*Schedule, error)
	UpdateSchedule(ctx context.Context, update *UpdateSchedule) (*Schedule, error)
	DeleteSchedule(ctx context.Context, delete *DeleteSchedule) error

	// Grade model related methods.
	CreateGrade(ctx context.Context, create *Grade) (*Grade, error)
	ListGrades(ctx context.Context, find *FindGrade) ([]*Grade, error)
	UpdateGrade(ctx context.Context, update *UpdateGrade) (*Grade, error)
	DeleteGrade(ctx context.Context, delete *DeleteGrade) error

	// Announcement model related methods.
	CreateAnnouncement(ctx context.Context, create *Announcement) (*Announcement, error)
	ListAnnouncements(ctx context.Context, find *FindAnnouncement) ([]*Announcement, error)
	UpdateAnnouncement(ctx context.Context, update *UpdateAnnouncement) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, delete *DeleteAnnouncement) error

	// Message model related methods.
	CreateMessage(ctx context.Context, create *Message) (*Message, error)
	ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error)
	DeleteMessage(ctx context.Context, delete *DeleteMessage) error

	// System setting related methods, used by the migrator.
	GetSystemSetting(ctx context.Context, name string) (string, error)
	UpsertSystemSetting(ctx context.Context, name, value string) error
}
