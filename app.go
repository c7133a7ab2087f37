package kinetic

import (
	"fmt"
	"reflect"
	"runtime"
	"time"
)

type systemFn any

// App owns the resource registry and the staged system schedule. Resources
// are singletons keyed by type; systems are plain functions whose pointer
// arguments are resolved from the registry when the system is called.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	accumulator float32
	quitting    bool
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Run drives the frame loop until a module calls Commands.Quit. Dynamic
// stages run once per frame, the fixed block at the Time resource's
// simulation rate. Requires a Time resource (TimeModule).
func (app *App) Run() {
	tm := app.timeResource()
	tm.Now = time.Now()

	for !app.quitting {
		app.RunFrame()
	}
}

// RunFrame advances the app by one wall-clock frame.
func (app *App) RunFrame() {
	tm := app.timeResource()

	now := time.Now()
	dt := float32(now.Sub(tm.Now).Seconds())
	tm.Now = now

	// Cap to avoid a fixed-step spiral after a stall.
	if dt > 0.25 {
		dt = 0.25
	}
	app.Advance(dt)
}

// Advance advances the app by an explicit frame duration in seconds.
// Deterministic; the test and replay entry point.
func (app *App) Advance(dt float32) {
	tm := app.timeResource()
	tm.FrameDt = dt
	app.accumulator += dt

	i := 0
	for i < len(app.stages) {
		if app.stages[i].UpdateType == DynamicUpdate {
			app.runStage(app.stages[i])
			i++
			continue
		}

		// Contiguous fixed stages advance together, once per simulation tick.
		j := i
		for j < len(app.stages) && app.stages[j].UpdateType == FixedUpdate {
			j++
		}
		for tm.FixedDt > 0 && app.accumulator >= tm.FixedDt {
			for k := i; k < j; k++ {
				app.runStage(app.stages[k])
			}
			app.accumulator -= tm.FixedDt
			tm.Tick++
		}
		i = j
	}
}

func (app *App) runStage(stage Stage) {
	for _, system := range app.systems[stage.Name] {
		app.callSystem(system)
	}
}

func (app *App) timeResource() *Time {
	if res, ok := app.resources[reflect.TypeOf(Time{})]; ok {
		return res.(*Time)
	}
	panic("App requires a Time resource; install TimeModule")
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

func (app *App) resource(t reflect.Type) (any, bool) {
	res, ok := app.resources[t]
	return res, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

// Logger returns the first Logger resource if present, otherwise a no-op
// logger. Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
