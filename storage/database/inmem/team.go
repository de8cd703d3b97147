package inmemdb

import (
	"context"
	"sort"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/course"
)

type teamRepository struct {
	db *DB
}

var _ course.TeamRepository = (*teamRepository)(nil) // interface compliance check

func NewTeamRepository(db *DB) *teamRepository {
	return &teamRepository{db: db}
}

func (repo *teamRepository) CreateTeam(ctx context.Context, tm course.Team, exec ...core.DBExecutor) (course.Team, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.teamPKCount++
	tm.ID = repo.db.teamPKCount
	repo.db.teams[tm.ID] = &tm
	return tm, nil
}

func (repo *teamRepository) AddTeamStudents(ctx context.Context, teamID int, studentIDs []string, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tm, ok := repo.db.teams[teamID]
	if !ok {
		return course.ErrTeamNotFound
	}
	tm.StudentIDs = append(tm.StudentIDs, studentIDs...)
	return nil
}

func (repo *teamRepository) QueryTeamsByCourse(ctx context.Context, joinCode string, exec ...core.DBExecutor) ([]course.Team, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teams := make([]course.Team, 0)
	for _, tm := range repo.db.teams {
		if tm.CourseJoinCode == joinCode {
			teams = append(teams, *tm)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (repo *teamRepository) GetTeamByID(ctx context.Context, id int, exec ...core.DBExecutor) (course.Team, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tm, ok := repo.db.teams[id]; ok {
		return *tm, nil
	}
	return course.Team{}, course.ErrTeamNotFound
}

func (repo *teamRepository) DeleteTeam(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.teams, id)
	return nil
}

func (repo *teamRepository) DeleteAllTeams(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n := int64(len(repo.db.teams))
	repo.db.teams = make(map[int]*course.Team)
	return n, nil
}
