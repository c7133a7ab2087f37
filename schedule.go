package kinetic

import (
	"fmt"
	"slices"
)

type UpdateType int

const (
	DynamicUpdate UpdateType = iota
	FixedUpdate
)

type Stage struct {
	Name       string
	UpdateType UpdateType
}

// Default stage order. Dynamic stages run once per frame; the contiguous
// fixed block runs zero or more times per frame at the simulation rate.
var (
	Prelude         = Stage{Name: "Prelude", UpdateType: DynamicUpdate}
	PreUpdate       = Stage{Name: "PreUpdate", UpdateType: DynamicUpdate}
	FixedPreUpdate  = Stage{Name: "FixedPreUpdate", UpdateType: FixedUpdate}
	FixedMain       = Stage{Name: "FixedMain", UpdateType: FixedUpdate}
	FixedPostUpdate = Stage{Name: "FixedPostUpdate", UpdateType: FixedUpdate}
	Update          = Stage{Name: "Update", UpdateType: DynamicUpdate}
	PostUpdate      = Stage{Name: "PostUpdate", UpdateType: DynamicUpdate}
	Finale          = Stage{Name: "Finale", UpdateType: DynamicUpdate}
)

func defaultStages() []Stage {
	return []Stage{
		Prelude,
		PreUpdate,
		FixedPreUpdate,
		FixedMain,
		FixedPostUpdate,
		Update,
		PostUpdate,
		Finale,
	}
}

type systemScheduleBuilder struct {
	inStage Stage
	system  systemFn
}

// System starts a schedule builder for a system function. Systems default
// to the Update stage.
func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  system,
		inStage: Update,
	}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  sched.system,
		inStage: s,
	}
}

type stagePosition int

const (
	stageBefore stagePosition = iota
	stageAfter
)

type stagePositionBuilder struct {
	position stagePosition
	target   Stage
}

func BeforeStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageBefore, target: s}
}

func AfterStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageAfter, target: s}
}

func (app *App) UseStage(stage Stage, where stagePositionBuilder) *App {
	stageIdx := -1
	for i, s := range app.stages {
		if s.Name == where.target.Name {
			stageIdx = i
			break
		}
	}
	if -1 == stageIdx {
		panic(fmt.Sprintf("Stage %v not found", where.target.Name))
	}

	insertAt := stageIdx
	if stageAfter == where.position {
		insertAt = stageIdx + 1
	}

	app.stages = slices.Insert(app.stages, insertAt, stage)
	app.systems[stage.Name] = make([]systemFn, 0)

	return app
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	if _, ok := app.systems[system.inStage.Name]; !ok {
		panic(fmt.Sprintf("Stage %v doesn't exist", system.inStage.Name))
	}
	app.systems[system.inStage.Name] = append(app.systems[system.inStage.Name], system.system)
	return app
}
