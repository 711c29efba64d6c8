package tasks

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/seshireddy/project-reloader/app/project"
)

func buildReloader(t *testing.T, typ project.Type) (*Reloader, error) {
	t.Helper()

	proj := project.New("test-project", typ)
	projectConfig := &project.Config{
		Name:        "test-project",
		Type:        typ,
		StatsURL:    "http://localhost/stats",
		ActivityURL: "http://localhost/activity.xml",
		Settings:    project.Settings{ReloadInterval: 15, Timeout: 10},
	}

	return NewReloader(proj, projectConfig, nil, nil, &http.Client{},
		project.NewActivityParser(), project.NewDescriptionExtractor(), Options{})
}

func TestNewReloaderStaticMapping(t *testing.T) {
	reloader, err := buildReloader(t, project.TypeStatic)
	if err != nil {
		t.Fatal(err)
	}

	taskList := reloader.Tasks()

	// Exactly one statistics loader plus the status emitter
	if len(taskList) != 2 {
		t.Fatalf("Expected 2 tasks for static project, got %d", len(taskList))
	}
	if _, ok := taskList[0].(*StatisticsTask); !ok {
		t.Errorf("Expected first task to be *StatisticsTask, got %T", taskList[0])
	}
	if _, ok := taskList[1].(*StatusTask); !ok {
		t.Errorf("Expected last task to be *StatusTask, got %T", taskList[1])
	}
}

func TestNewReloaderLiveMapping(t *testing.T) {
	reloader, err := buildReloader(t, project.TypeLive)
	if err != nil {
		t.Fatal(err)
	}

	taskList := reloader.Tasks()

	// Details, last update and statistics loaders plus the status emitter
	if len(taskList) != 4 {
		t.Fatalf("Expected 4 tasks for live project, got %d", len(taskList))
	}
	if _, ok := taskList[0].(*DetailsTask); !ok {
		t.Errorf("Expected first task to be *DetailsTask, got %T", taskList[0])
	}
	if _, ok := taskList[1].(*LastUpdateTask); !ok {
		t.Errorf("Expected second task to be *LastUpdateTask, got %T", taskList[1])
	}
	if _, ok := taskList[2].(*StatisticsTask); !ok {
		t.Errorf("Expected third task to be *StatisticsTask, got %T", taskList[2])
	}
	if _, ok := taskList[3].(*StatusTask); !ok {
		t.Errorf("Expected last task to be *StatusTask, got %T", taskList[3])
	}
}

func TestNewReloaderTaskOrderingIsDeterministic(t *testing.T) {
	first, err := buildReloader(t, project.TypeLive)
	if err != nil {
		t.Fatal(err)
	}
	second, err := buildReloader(t, project.TypeLive)
	if err != nil {
		t.Fatal(err)
	}

	firstTasks := first.Tasks()
	secondTasks := second.Tasks()

	if len(firstTasks) != len(secondTasks) {
		t.Fatalf("Expected identical task counts, got %d and %d", len(firstTasks), len(secondTasks))
	}
	for i := range firstTasks {
		if firstTasks[i].GetType() != secondTasks[i].GetType() {
			t.Errorf("Expected deterministic ordering at index %d: %s vs %s",
				i, firstTasks[i].GetType(), secondTasks[i].GetType())
		}
	}
}

func TestNewReloaderUnsupportedType(t *testing.T) {
	reloader, err := buildReloader(t, project.Type("archived"))

	if !errors.Is(err, ErrUnsupportedProjectType) {
		t.Errorf("Expected ErrUnsupportedProjectType, got %v", err)
	}
	if reloader != nil {
		t.Error("Expected no reloader for unsupported project type")
	}
}

func TestNewReloaderTasksBoundToProject(t *testing.T) {
	reloader, err := buildReloader(t, project.TypeLive)
	if err != nil {
		t.Fatal(err)
	}

	for _, task := range reloader.Tasks() {
		if task.GetProjectName() != "test-project" {
			t.Errorf("Expected task bound to 'test-project', got '%s'", task.GetProjectName())
		}
	}
}

func TestNewReloaderStatusTaskInitialDelay(t *testing.T) {
	reloader, err := buildReloader(t, project.TypeStatic)
	if err != nil {
		t.Fatal(err)
	}

	taskList := reloader.Tasks()
	statusTask := taskList[len(taskList)-1]

	if statusTask.GetType() != TaskTypeStatus {
		t.Fatalf("Expected status task, got %s", statusTask.GetType())
	}
	if statusTask.GetInitialDelay() != 1*time.Second {
		t.Errorf("Expected default status delay of 1s, got %v", statusTask.GetInitialDelay())
	}

	for _, task := range taskList[:len(taskList)-1] {
		if task.GetInitialDelay() != 0 {
			t.Errorf("Expected refresh task %s to fire immediately, got delay %v",
				task.GetType(), task.GetInitialDelay())
		}
	}
}
