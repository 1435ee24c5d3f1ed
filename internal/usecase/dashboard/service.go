// Package dashboard assembles the per-role read models from bulk repository
// reads joined in memory.
package dashboard

import (
	"context"
	"errors"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrInternal = errors.New("internal error")

type Service struct {
	users       user.Repository
	projects    project.Repository
	submissions submission.Repository
}

func NewService(users user.Repository, projects project.Repository, submissions submission.Repository) *Service {
	return &Service{users: users, projects: projects, submissions: submissions}
}

func (s *Service) HROverview(ctx context.Context, sess access.Session) (HROverview, error) {
	if err := access.Authorize(sess, access.OpViewHRDashboard, nil); err != nil {
		return HROverview{}, err
	}
	ix, err := s.load(ctx, user.Filter{}, project.Filter{}, submission.Filter{})
	if err != nil {
		return HROverview{}, err
	}

	out := HROverview{
		Interns:     make([]Intern, 0),
		Mentors:     make([]Mentor, 0),
		Submissions: make([]Submission, 0, len(ix.submissions)),
	}
	for _, u := range ix.byRole(user.RoleIntern) {
		out.Interns = append(out.Interns, ix.intern(u, false))
	}
	for _, m := range ix.byRole(user.RoleMentor) {
		mv := Mentor{UserView: userView(m), Interns: make([]Intern, 0)}
		for _, in := range ix.menteesOf(m.ID) {
			mv.Interns = append(mv.Interns, Intern{UserView: userView(in)})
		}
		out.Mentors = append(out.Mentors, mv)
	}
	for _, sub := range ix.submissions {
		out.Submissions = append(out.Submissions, ix.submission(sub, true, true))
	}
	return out, nil
}

func (s *Service) HRInterns(ctx context.Context, sess access.Session) (HRInterns, error) {
	if err := access.Authorize(sess, access.OpViewHRDashboard, nil); err != nil {
		return HRInterns{}, err
	}
	ix, err := s.load(ctx, user.Filter{}, project.Filter{}, submission.Filter{})
	if err != nil {
		return HRInterns{}, err
	}

	out := HRInterns{Interns: make([]Intern, 0), Mentors: make([]UserView, 0)}
	for _, u := range ix.byRole(user.RoleIntern) {
		out.Interns = append(out.Interns, ix.intern(u, true))
	}
	for _, m := range ix.byRole(user.RoleMentor) {
		out.Mentors = append(out.Mentors, userView(m))
	}
	return out, nil
}

func (s *Service) HRMentors(ctx context.Context, sess access.Session) (HRMentors, error) {
	if err := access.Authorize(sess, access.OpViewHRDashboard, nil); err != nil {
		return HRMentors{}, err
	}
	ix, err := s.load(ctx, user.Filter{}, project.Filter{}, submission.Filter{})
	if err != nil {
		return HRMentors{}, err
	}

	out := HRMentors{Mentors: make([]Mentor, 0)}
	for _, m := range ix.byRole(user.RoleMentor) {
		mv := Mentor{UserView: userView(m), Interns: make([]Intern, 0)}
		for _, in := range ix.menteesOf(m.ID) {
			iv := ix.intern(in, true)
			iv.Mentor = nil
			mv.Interns = append(mv.Interns, iv)
		}
		out.Mentors = append(out.Mentors, mv)
	}
	return out, nil
}

func (s *Service) HRProjects(ctx context.Context, sess access.Session) (HRProjects, error) {
	if err := access.Authorize(sess, access.OpViewHRDashboard, nil); err != nil {
		return HRProjects{}, err
	}
	ix, err := s.load(ctx, user.Filter{}, project.Filter{}, submission.Filter{})
	if err != nil {
		return HRProjects{}, err
	}

	out := HRProjects{Projects: make([]Project, 0, len(ix.projects)), Interns: make([]Intern, 0)}
	for _, p := range ix.projects {
		pv := Project{ProjectView: projectView(p)}
		if c, ok := ix.users[p.CreatorID]; ok {
			v := userView(c)
			pv.Creator = &v
		}
		if p.AssignedToID != nil {
			if a, ok := ix.users[*p.AssignedToID]; ok {
				v := userView(a)
				pv.Assignee = &v
			}
		}
		for _, sub := range ix.submissionsByProject[p.ID] {
			pv.Submissions = append(pv.Submissions, ix.submission(sub, true, false))
		}
		out.Projects = append(out.Projects, pv)
	}
	for _, u := range ix.byRole(user.RoleIntern) {
		iv := ix.intern(u, false)
		iv.Mentor = nil
		out.Interns = append(out.Interns, iv)
	}
	return out, nil
}

func (s *Service) MentorOverview(ctx context.Context, sess access.Session) (MentorOverview, error) {
	if err := access.Authorize(sess, access.OpViewMentorDashboard, nil); err != nil {
		return MentorOverview{}, err
	}
	mentorID := sess.UserID
	ix, err := s.load(ctx, user.Filter{Role: user.RoleIntern, MentorID: &mentorID}, project.Filter{}, submission.Filter{})
	if err != nil {
		return MentorOverview{}, err
	}

	out := MentorOverview{Interns: make([]Intern, 0), Projects: make([]ProjectView, 0)}
	for _, in := range ix.menteesOf(mentorID) {
		iv := ix.intern(in, false)
		iv.Mentor = nil
		out.Interns = append(out.Interns, iv)
	}
	for _, p := range ix.projects {
		if p.CreatorID == mentorID {
			out.Projects = append(out.Projects, projectView(p))
		}
	}
	return out, nil
}

func (s *Service) MentorInterns(ctx context.Context, sess access.Session) (MentorInterns, error) {
	if err := access.Authorize(sess, access.OpViewMentorDashboard, nil); err != nil {
		return MentorInterns{}, err
	}
	mentorID := sess.UserID
	ix, err := s.load(ctx, user.Filter{Role: user.RoleIntern, MentorID: &mentorID}, project.Filter{}, submission.Filter{})
	if err != nil {
		return MentorInterns{}, err
	}

	out := MentorInterns{Interns: make([]Intern, 0), AvailableProjects: make([]ProjectView, 0)}
	for _, in := range ix.menteesOf(mentorID) {
		iv := ix.intern(in, true)
		iv.Mentor = nil
		out.Interns = append(out.Interns, iv)
	}
	for _, p := range ix.projects {
		if p.CreatorID == mentorID && !p.Assigned() {
			out.AvailableProjects = append(out.AvailableProjects, projectView(p))
		}
	}
	return out, nil
}

func (s *Service) Intern(ctx context.Context, sess access.Session) (InternHome, error) {
	if err := access.Authorize(sess, access.OpViewInternDashboard, nil); err != nil {
		return InternHome{}, err
	}
	internID := sess.UserID

	var out InternHome
	me, err := s.users.GetUserByID(ctx, internID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return InternHome{}, access.ErrUnauthenticated
		}
		return InternHome{}, ErrInternal
	}
	if me.MentorID != nil {
		mentor, err := s.users.GetUserByID(ctx, *me.MentorID)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			return InternHome{}, ErrInternal
		}
		if err == nil {
			v := userView(mentor)
			out.Mentor = &v
		}
	}

	assigned, err := s.projects.ListProjects(ctx, project.Filter{AssignedToID: &internID})
	if err != nil {
		return InternHome{}, ErrInternal
	}
	if len(assigned) == 0 {
		return out, nil
	}
	pv := projectView(assigned[0])
	out.Project = &pv

	subs, err := s.submissions.ListSubmissions(ctx, submission.Filter{InternID: &internID, ProjectID: &pv.ID})
	if err != nil {
		return InternHome{}, ErrInternal
	}
	if len(subs) > 0 {
		sv := submissionView(subs[0])
		out.Submission = &sv
	}
	return out, nil
}

// index holds one bulk read keyed for the joins.
type index struct {
	users       map[uuid.UUID]user.User
	ordered     []user.User
	projects    []project.Project
	submissions []submission.Submission

	projectsByID         map[uuid.UUID]project.Project
	projectsByAssignee   map[uuid.UUID][]project.Project
	submissionsByIntern  map[uuid.UUID][]submission.Submission
	submissionsByProject map[uuid.UUID][]submission.Submission
}

func (s *Service) load(ctx context.Context, uf user.Filter, pf project.Filter, sf submission.Filter) (*index, error) {
	var (
		users    []user.User
		projects []project.Project
		subs     []submission.Submission
	)

	// The three reads are independent; run them together.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.ListUsers(gctx, uf)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.projects.ListProjects(gctx, pf)
		return err
	})
	g.Go(func() (err error) {
		subs, err = s.submissions.ListSubmissions(gctx, sf)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, ErrInternal
	}

	ix := &index{
		users:                make(map[uuid.UUID]user.User, len(users)),
		ordered:              users,
		projects:             projects,
		submissions:          subs,
		projectsByID:         make(map[uuid.UUID]project.Project, len(projects)),
		projectsByAssignee:   map[uuid.UUID][]project.Project{},
		submissionsByIntern:  map[uuid.UUID][]submission.Submission{},
		submissionsByProject: map[uuid.UUID][]submission.Submission{},
	}
	for _, u := range users {
		ix.users[u.ID] = u
	}
	for _, p := range projects {
		ix.projectsByID[p.ID] = p
		if p.AssignedToID != nil {
			ix.projectsByAssignee[*p.AssignedToID] = append(ix.projectsByAssignee[*p.AssignedToID], p)
		}
	}
	for _, sub := range subs {
		ix.submissionsByIntern[sub.InternID] = append(ix.submissionsByIntern[sub.InternID], sub)
		ix.submissionsByProject[sub.ProjectID] = append(ix.submissionsByProject[sub.ProjectID], sub)
	}
	return ix, nil
}

func (ix *index) byRole(role user.Role) []user.User {
	out := make([]user.User, 0)
	for _, u := range ix.ordered {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func (ix *index) menteesOf(mentorID uuid.UUID) []user.User {
	out := make([]user.User, 0)
	for _, u := range ix.ordered {
		if u.Role == user.RoleIntern && u.MentorID != nil && *u.MentorID == mentorID {
			out = append(out, u)
		}
	}
	return out
}

func (ix *index) intern(u user.User, withSubmissions bool) Intern {
	iv := Intern{UserView: userView(u), AssignedProjects: make([]ProjectView, 0)}
	if u.MentorID != nil {
		if m, ok := ix.users[*u.MentorID]; ok {
			v := userView(m)
			iv.Mentor = &v
		}
	}
	for _, p := range ix.projectsByAssignee[u.ID] {
		iv.AssignedProjects = append(iv.AssignedProjects, projectView(p))
	}
	if withSubmissions {
		for _, sub := range ix.submissionsByIntern[u.ID] {
			iv.Submissions = append(iv.Submissions, ix.submission(sub, false, true))
		}
	}
	return iv
}

func (ix *index) submission(sub submission.Submission, withIntern, withProject bool) Submission {
	out := Submission{SubmissionView: submissionView(sub)}
	if withIntern {
		if u, ok := ix.users[sub.InternID]; ok {
			v := userView(u)
			out.Intern = &v
		}
	}
	if withProject {
		if p, ok := ix.projectsByID[sub.ProjectID]; ok {
			v := projectView(p)
			out.Project = &v
		}
	}
	return out
}
