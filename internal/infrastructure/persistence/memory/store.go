// Package memory is a process-local store implementing the user, project and
// submission repositories. It backs STORAGE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
)

type pairKey struct {
	projectID uuid.UUID
	internID  uuid.UUID
}

type Store struct {
	mu sync.RWMutex

	users       map[uuid.UUID]user.User
	emails      map[string]uuid.UUID
	projects    map[uuid.UUID]project.Project
	submissions map[uuid.UUID]submission.Submission
	pairs       map[pairKey]uuid.UUID

	now  func() time.Time
	last time.Time
}

func NewStore() *Store {
	return &Store{
		users:       map[uuid.UUID]user.User{},
		emails:      map[string]uuid.UUID{},
		projects:    map[uuid.UUID]project.Project{},
		submissions: map[uuid.UUID]submission.Submission{},
		pairs:       map[pairKey]uuid.UUID{},
		now:         time.Now,
	}
}

var (
	_ user.Repository       = (*Store)(nil)
	_ project.Repository    = (*Store)(nil)
	_ submission.Repository = (*Store)(nil)
)

// Ping satisfies the health check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// tick returns a strictly increasing timestamp. Callers hold the write lock.
func (s *Store) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[u.Email]; ok {
		return user.User{}, user.ErrEmailTaken
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := s.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	u.MentorID = cloneID(u.MentorID)

	s.users[u.ID] = u
	s.emails[u.Email] = u.ID
	return copyUser(u), nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.emails[email]
	return ok, nil
}

func (s *Store) FindByIDAndRole(ctx context.Context, id uuid.UUID, role user.Role) (user.User, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	if u.Role != role {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *Store) SetMentor(ctx context.Context, internID uuid.UUID, mentorID uuid.UUID) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[internID]
	if !ok || u.Role != user.RoleIntern {
		return user.User{}, user.ErrNotFound
	}
	u.MentorID = &mentorID
	u.UpdatedAt = s.tick()
	s.users[internID] = u
	return copyUser(u), nil
}

func (s *Store) ListUsers(ctx context.Context, f user.Filter) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user.User, 0)
	for _, u := range s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.MentorID != nil && (u.MentorID == nil || *u.MentorID != *f.MentorID) {
			continue
		}
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	if err := ctx.Err(); err != nil {
		return project.Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := s.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	p.AssignedToID = cloneID(p.AssignedToID)

	s.projects[p.ID] = p
	return copyProject(p), nil
}

func (s *Store) GetProjectByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	if err := ctx.Err(); err != nil {
		return project.Project{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	return copyProject(p), nil
}

func (s *Store) AssignProject(ctx context.Context, projectID uuid.UUID, internID uuid.UUID) (project.Project, error) {
	if err := ctx.Err(); err != nil {
		return project.Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	p.AssignedToID = &internID
	p.UpdatedAt = s.tick()
	s.projects[projectID] = p
	return copyProject(p), nil
}

func (s *Store) ListProjects(ctx context.Context, f project.Filter) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]project.Project, 0)
	for _, p := range s.projects {
		if f.CreatorID != nil && p.CreatorID != *f.CreatorID {
			continue
		}
		if f.AssignedToID != nil && !p.IsAssignedTo(*f.AssignedToID) {
			continue
		}
		if f.Unassigned && p.Assigned() {
			continue
		}
		out = append(out, copyProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) UpsertSubmission(ctx context.Context, in submission.Submission) (submission.Submission, bool, error) {
	if err := ctx.Err(); err != nil {
		return submission.Submission{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	key := pairKey{projectID: in.ProjectID, internID: in.InternID}
	if id, ok := s.pairs[key]; ok {
		cur := s.submissions[id]
		if cur.Graded() {
			return submission.Submission{}, false, submission.ErrAlreadyGraded
		}
		cur.RepoURL = in.RepoURL
		if in.LiveURL != nil {
			cur.LiveURL = cloneString(in.LiveURL)
		}
		cur.UpdatedAt = now
		s.submissions[id] = cur
		return copySubmission(cur), false, nil
	}

	out := submission.Submission{
		ID:        uuid.New(),
		RepoURL:   in.RepoURL,
		LiveURL:   cloneString(in.LiveURL),
		ProjectID: in.ProjectID,
		InternID:  in.InternID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.submissions[out.ID] = out
	s.pairs[key] = out.ID
	return copySubmission(out), true, nil
}

func (s *Store) GetSubmissionByID(ctx context.Context, id uuid.UUID) (submission.Submission, error) {
	if err := ctx.Err(); err != nil {
		return submission.Submission{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	return copySubmission(sub), nil
}

func (s *Store) GradeSubmission(ctx context.Context, id uuid.UUID, grade int, feedback *string) (submission.Submission, error) {
	if err := ctx.Err(); err != nil {
		return submission.Submission{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	g := grade
	sub.Grade = &g
	if feedback != nil {
		sub.Feedback = cloneString(feedback)
	}
	sub.UpdatedAt = s.tick()
	s.submissions[id] = sub
	return copySubmission(sub), nil
}

func (s *Store) ListSubmissions(ctx context.Context, f submission.Filter) ([]submission.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]submission.Submission, 0)
	for _, sub := range s.submissions {
		if f.InternID != nil && sub.InternID != *f.InternID {
			continue
		}
		if f.ProjectID != nil && sub.ProjectID != *f.ProjectID {
			continue
		}
		out = append(out, copySubmission(sub))
	}
	sort.Slice(out, func(i, j int) bool {
		return before(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func before(a, b time.Time, aid, bid uuid.UUID) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return aid.String() < bid.String()
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyUser(u user.User) user.User {
	u.MentorID = cloneID(u.MentorID)
	return u
}

func copyProject(p project.Project) project.Project {
	p.AssignedToID = cloneID(p.AssignedToID)
	return p
}

func copySubmission(s submission.Submission) submission.Submission {
	s.LiveURL = cloneString(s.LiveURL)
	s.Feedback = cloneString(s.Feedback)
	if s.Grade != nil {
		g := *s.Grade
		s.Grade = &g
	}
	return s
}
