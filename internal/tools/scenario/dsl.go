package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const (
	scenarioTypeName = "scenario"
	turnTypeName     = "turn"
)

// Scenario is a named list of steps loaded from a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted action with its arguments.
type Step struct {
	Kind string
	Args map[string]any
}

type turnHandle struct {
	scenario  *Scenario
	stepIndex int
}

// LoadScenarioFromFile runs a Lua script and returns the Scenario it builds.
// The script must end with `return scene`.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerLuaTypes(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	registerMethods(state, scenarioTypeName, scenarioMethods)
	registerMethods(state, turnTypeName, turnMethods)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

func registerMethods(state *lua.State, typeName string, methods []lua.RegistryFunction) {
	lua.NewMetaTable(state, typeName)
	state.NewTable()
	lua.SetFunctions(state, methods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "seed", Function: scenarioSeed},
	{Name: "locale", Function: scenarioLocale},
	{Name: "player", Function: tableStep("player")},
	{Name: "give_item", Function: scenarioGiveItem},
	{Name: "equip", Function: tableStep("equip")},
	{Name: "unequip", Function: scenarioUnequip},
	{Name: "adjust", Function: tableStep("adjust")},
	{Name: "rest", Function: emptyStep("rest")},
	{Name: "battle", Function: tableStep("battle")},
	{Name: "rolls", Function: tableStep("rolls")},
	{Name: "spin", Function: scenarioSpin},
	{Name: "simulate", Function: optionalTableStep("simulate")},
	{Name: "abort", Function: optionalTableStep("abort")},
	{Name: "expect_player", Function: tableStep("expect_player")},
	{Name: "expect_enemy", Function: tableStep("expect_enemy")},
	{Name: "expect_state", Function: tableStep("expect_state")},
	{Name: "expect_log", Function: tableStep("expect_log")},
}

var turnMethods = []lua.RegistryFunction{
	{Name: "expect", Function: turnExpect},
	{Name: "fails_with", Function: turnFailsWith},
}

func scenarioSeed(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckInteger(state, 2)
	appendStep(scenario, "seed", map[string]any{"value": value})
	return 0
}

func scenarioLocale(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckString(state, 2)
	appendStep(scenario, "locale", map[string]any{"value": value})
	return 0
}

// scenarioGiveItem accepts a catalog id or a full item table.
func scenarioGiveItem(state *lua.State) int {
	scenario := checkScenario(state)
	if state.TypeOf(2) == lua.TypeString {
		id, _ := state.ToString(2)
		appendStep(scenario, "give_item", map[string]any{"id": id})
		return 0
	}
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "give_item", tableToMap(state, 2))
	return 0
}

func scenarioUnequip(state *lua.State) int {
	scenario := checkScenario(state)
	slot := lua.CheckString(state, 2)
	appendStep(scenario, "unequip", map[string]any{"slot": slot})
	return 0
}

// scenarioSpin records a scripted triple, or "random" for a seeded draw, and
// returns a turn handle so the caller can chain expectations onto it.
func scenarioSpin(state *lua.State) int {
	scenario := checkScenario(state)
	var symbols any
	if state.TypeOf(2) == lua.TypeString {
		value, _ := state.ToString(2)
		if value != "random" {
			lua.ArgumentError(state, 2, "symbol list or \"random\" expected")
			return 0
		}
		symbols = value
	} else {
		lua.CheckType(state, 2, lua.TypeTable)
		symbols = tableToGo(state, 2)
	}
	data := map[string]any{"symbols": symbols}
	for key, value := range optionalTable(state, 3) {
		data[key] = value
	}
	stepIndex := appendStep(scenario, "spin", data)
	state.PushUserData(&turnHandle{scenario: scenario, stepIndex: stepIndex})
	lua.SetMetaTableNamed(state, turnTypeName)
	return 1
}

func turnExpect(state *lua.State) int {
	turn := checkTurn(state)
	lua.CheckType(state, 2, lua.TypeTable)
	step := &turn.scenario.Steps[turn.stepIndex]
	step.Args["expect"] = tableToMap(state, 2)
	state.PushValue(1)
	return 1
}

func turnFailsWith(state *lua.State) int {
	turn := checkTurn(state)
	code := lua.CheckString(state, 2)
	step := &turn.scenario.Steps[turn.stepIndex]
	step.Args["expect_error"] = code
	state.PushValue(1)
	return 1
}

func tableStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		lua.CheckType(state, 2, lua.TypeTable)
		appendStep(scenario, kind, tableToMap(state, 2))
		return 0
	}
}

func optionalTableStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		appendStep(scenario, kind, optionalTable(state, 2))
		return 0
	}
}

func emptyStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		appendStep(scenario, kind, nil)
		return 0
	}
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func checkTurn(state *lua.State) *turnHandle {
	ud := lua.CheckUserData(state, 1, turnTypeName)
	if turn, ok := ud.(*turnHandle); ok && turn != nil && turn.scenario != nil {
		return turn
	}
	lua.ArgumentError(state, 1, "turn expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) int {
	if scenario == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
	return len(scenario.Steps) - 1
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo converts sequences to []any and everything else to a map.
func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
