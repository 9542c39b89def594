package autogen

import (
	"testing"

	"github.com/dkinzler/autogen/codegen/parse"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var (
	userType = parse.SimpleType{Type: "User", Package: "example.com/app/api/model"}
)

func observableOf(t parse.ParamType) parse.GenericType {
	return parse.GenericType{
		Type: parse.SimpleType{Type: "Observable", Package: "github.com/dkinzler/baselib/rx"},
		Args: []parse.ParamType{t},
	}
}

func envelopeOf(t parse.ParamType) parse.GenericType {
	return parse.GenericType{
		Type: parse.SimpleType{Type: "BaseResponse", Package: "github.com/dkinzler/baselib/model/response"},
		Args: []parse.ParamType{t},
	}
}

func returns(types ...parse.ParamType) []parse.Param {
	result := make([]parse.Param, len(types))
	for i, t := range types {
		result[i] = parse.Param{Type: t}
	}
	return result
}

func testService() Service {
	return Service{
		Interface: parse.Interface{Name: "FooService", Package: "example.com/app/api/service"},
		Config:    DefaultConfig(),
	}
}

func TestClassifyReturn(t *testing.T) {
	a := assert.New(t)

	config := DefaultConfig()
	stringType := parse.SimpleType{Type: "string"}

	cases := []struct {
		Returns []parse.Param
		Kind    ShapeKind
		Inner   parse.ParamType
	}{
		{Returns: nil, Kind: NotObservable},
		{Returns: returns(stringType), Kind: NotObservable},
		{Returns: returns(observableOf(stringType)), Kind: ObservableOfOpaque},
		{Returns: returns(observableOf(parse.ArrayType{Type: userType})), Kind: ObservableOfOpaque},
		{Returns: returns(observableOf(envelopeOf(userType))), Kind: ObservableOfEnvelope, Inner: userType},
		{Returns: returns(observableOf(envelopeOf(parse.StarType{Type: userType}))), Kind: ObservableOfEnvelope, Inner: parse.StarType{Type: userType}},
		// more than one return value
		{Returns: returns(observableOf(stringType), parse.SimpleType{Type: "error"}), Kind: NotObservable},
		// pointer to observable
		{Returns: returns(parse.StarType{Type: observableOf(stringType)}), Kind: NotObservable},
		// observable with the wrong number of type arguments
		{Returns: returns(parse.GenericType{Type: observableOf(stringType).Type, Args: []parse.ParamType{stringType, stringType}}), Kind: NotObservable},
		// same name, other package
		{Returns: returns(parse.GenericType{Type: parse.SimpleType{Type: "Observable", Package: "example.com/other/rx"}, Args: []parse.ParamType{stringType}}), Kind: NotObservable},
		// envelope that is not inside an observable
		{Returns: returns(envelopeOf(userType)), Kind: NotObservable},
		// envelope with two type arguments is opaque
		{Returns: returns(observableOf(parse.GenericType{Type: envelopeOf(userType).Type, Args: []parse.ParamType{userType, userType}})), Kind: ObservableOfOpaque},
		// uninstantiated observable
		{Returns: returns(parse.SimpleType{Type: "Observable", Package: "github.com/dkinzler/baselib/rx"}), Kind: NotObservable},
	}

	for i, c := range cases {
		shape := ClassifyReturn(c.Returns, config)
		a.Equal(c.Kind, shape.Kind, "test case %v", i)
		a.Equal(c.Inner, shape.Inner, "test case %v", i)
	}
}

func TestClassifyReturnUsesConfig(t *testing.T) {
	a := assert.New(t)

	config := DefaultConfig()
	config.Observable = TypeRef{Package: "example.com/stream", Name: "Flow"}
	flow := parse.GenericType{
		Type: parse.SimpleType{Type: "Flow", Package: "example.com/stream"},
		Args: []parse.ParamType{envelopeOf(userType)},
	}
	a.Equal(ObservableOfEnvelope, ClassifyReturn(returns(flow), config).Kind)
	a.Equal(NotObservable, ClassifyReturn(returns(observableOf(envelopeOf(userType))), config).Kind)
}

func TestParseDirective(t *testing.T) {
	a := assert.New(t)

	cases := []struct {
		Name      string
		Directive Directive
		Error     bool
	}{
		{Name: "", Directive: Default},
		{Name: "DEFAULT", Directive: Default},
		{Name: "SWITCH_TO_MAIN", Directive: SwitchToMain},
		{Name: "SWITCH_MAIN", Directive: SwitchToMain},
		{Name: "SWITCH_IO", Directive: SwitchToIO},
		{Name: " switch_to_io ", Directive: SwitchToIO},
		{Name: "HANDLE_RESULT_TO_MAIN", Directive: HandleResultToMain},
		{Name: "HANDLE_RESULT_TO_IO", Directive: HandleResultToIO},
		{Name: "ONLY_HANDLE_RESULT", Directive: OnlyHandleResult},
		{Name: "DO_NOT_HANDLE", Directive: DoNotHandle},
		{Name: "SWITCH", Error: true},
	}

	for i, c := range cases {
		d, err := ParseDirective(c.Name)
		a.Equal(c.Error, err != nil, "test case %v", i)
		if !c.Error {
			a.Equal(c.Directive, d, "test case %v", i)
		}
	}
}

func TestCompatibility(t *testing.T) {
	a := assert.New(t)

	notObservable := ReturnShape{Kind: NotObservable}
	opaque := ReturnShape{Kind: ObservableOfOpaque}
	envelope := ReturnShape{Kind: ObservableOfEnvelope, Inner: userType}

	cases := []struct {
		Directive Directive
		Expected  [3]bool
	}{
		{Directive: Default, Expected: [3]bool{true, true, true}},
		{Directive: DoNotHandle, Expected: [3]bool{true, true, true}},
		{Directive: SwitchToMain, Expected: [3]bool{false, true, true}},
		{Directive: SwitchToIO, Expected: [3]bool{false, true, true}},
		{Directive: HandleResultToMain, Expected: [3]bool{false, false, true}},
		{Directive: HandleResultToIO, Expected: [3]bool{false, false, true}},
		{Directive: OnlyHandleResult, Expected: [3]bool{false, false, true}},
		{Directive: Directive("UNKNOWN"), Expected: [3]bool{false, false, false}},
	}

	for _, c := range cases {
		got := [3]bool{
			c.Directive.Compatible(notObservable),
			c.Directive.Compatible(opaque),
			c.Directive.Compatible(envelope),
		}
		a.Equal(c.Expected, got, "directive %v", c.Directive)
	}

	a.Equal(DoNotHandle, Resolve(notObservable))
	a.Equal(SwitchToMain, Resolve(opaque))
	a.Equal(HandleResultToMain, Resolve(envelope))

	a.Equal("handleResult", HandleResultToMain.Transform())
	a.Equal("applySchedulers", SwitchToMain.Transform())
	a.Equal("handleResultToIO", HandleResultToIO.Transform())
	a.Equal("applySchedulersIO", SwitchToIO.Transform())
	a.Equal("onlyHandleResult", OnlyHandleResult.Transform())
	a.Equal("", DoNotHandle.Transform())
	a.Equal("", Default.Transform())
}

func TestPlanNotObservableDowngrades(t *testing.T) {
	a := assert.New(t)

	s := testService()
	rets := returns(parse.SimpleType{Type: "string"})

	for _, d := range []Directive{SwitchToMain, SwitchToIO, HandleResultToMain, HandleResultToIO, OnlyHandleResult} {
		m := MethodDescriptor{Name: "Ping", Returns: rets, Directive: d}
		plan, diagnostic := Plan(s, m)
		a.Equal(DoNotHandle, plan.Directive, "directive %v", d)
		a.Equal(d, plan.Declared, "directive %v", d)
		a.Equal("", plan.Transform, "directive %v", d)
		a.Equal(rets, plan.Returns, "directive %v", d)
		if a.NotNil(diagnostic, "directive %v", d) {
			a.Equal(Diagnostic{Service: "FooService", Method: "Ping", Declared: d, Shape: ReturnShape{Kind: NotObservable}}, *diagnostic)
		}
	}

	for _, d := range []Directive{Default, DoNotHandle} {
		plan, diagnostic := Plan(s, MethodDescriptor{Name: "Ping", Returns: rets, Directive: d})
		a.Equal(DoNotHandle, plan.Directive, "directive %v", d)
		a.Nil(diagnostic, "directive %v", d)
	}
}

func TestPlanOpaqueHandleResultDowngradesToSwitch(t *testing.T) {
	s := testService()
	m := MethodDescriptor{
		Name:      "Status",
		Returns:   returns(observableOf(parse.SimpleType{Type: "string"})),
		Directive: HandleResultToMain,
	}

	plan, diagnostic := Plan(s, m)
	want := EmissionPlan{
		Method:    m,
		Declared:  HandleResultToMain,
		Directive: SwitchToMain,
		Shape:     ReturnShape{Kind: ObservableOfOpaque},
		Returns:   m.Returns,
		Transform: "applySchedulers",
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
	wantDiagnostic := &Diagnostic{Service: "FooService", Method: "Status", Declared: HandleResultToMain, Shape: ReturnShape{Kind: ObservableOfOpaque}}
	if diff := cmp.Diff(wantDiagnostic, diagnostic); diff != "" {
		t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanEnvelope(t *testing.T) {
	s := testService()
	params := []parse.Param{{Name: "id", Type: parse.SimpleType{Type: "int"}}}
	rets := returns(observableOf(envelopeOf(userType)))

	cases := []struct {
		Directive Directive
		Resolved  Directive
		Transform string
		Unwraps   bool
	}{
		{Directive: Default, Resolved: HandleResultToMain, Transform: "handleResult", Unwraps: true},
		{Directive: OnlyHandleResult, Resolved: OnlyHandleResult, Transform: "onlyHandleResult", Unwraps: true},
		{Directive: HandleResultToIO, Resolved: HandleResultToIO, Transform: "handleResultToIO", Unwraps: true},
		{Directive: SwitchToIO, Resolved: SwitchToIO, Transform: "applySchedulersIO"},
		{Directive: SwitchToMain, Resolved: SwitchToMain, Transform: "applySchedulers"},
		{Directive: DoNotHandle, Resolved: DoNotHandle},
	}

	for _, c := range cases {
		m := MethodDescriptor{Name: "Fetch", Params: params, Returns: rets, Directive: c.Directive}
		plan, diagnostic := Plan(s, m)

		wantReturns := rets
		if c.Unwraps {
			wantReturns = returns(observableOf(userType))
		}
		want := EmissionPlan{
			Method:    m,
			Declared:  c.Directive,
			Directive: c.Resolved,
			Shape:     ReturnShape{Kind: ObservableOfEnvelope, Inner: userType},
			Returns:   wantReturns,
			Transform: c.Transform,
		}
		if diff := cmp.Diff(want, plan); diff != "" {
			t.Errorf("Plan() with directive %v mismatch (-want +got):\n%s", c.Directive, diff)
		}
		if diagnostic != nil {
			t.Errorf("Plan() with directive %v: unexpected diagnostic %v", c.Directive, diagnostic)
		}
	}
}

func TestPlanIsIdempotent(t *testing.T) {
	s := testService()
	for _, m := range []MethodDescriptor{
		{Name: "Fetch", Returns: returns(observableOf(envelopeOf(userType)))},
		{Name: "Status", Returns: returns(observableOf(parse.SimpleType{Type: "string"})), Directive: OnlyHandleResult},
		{Name: "Ping", Returns: returns(parse.SimpleType{Type: "string"}), Directive: SwitchToIO},
	} {
		p1, d1 := Plan(s, m)
		p2, d2 := Plan(s, m)
		if diff := cmp.Diff(p1, p2); diff != "" {
			t.Errorf("Plan(%v) not idempotent (-first +second):\n%s", m.Name, diff)
		}
		if diff := cmp.Diff(d1, d2); diff != "" {
			t.Errorf("Plan(%v) diagnostics differ (-first +second):\n%s", m.Name, diff)
		}
	}
}

func TestPlanService(t *testing.T) {
	a := assert.New(t)

	s := testService()
	s.Methods = []MethodDescriptor{
		{Name: "Fetch", Returns: returns(observableOf(envelopeOf(userType)))},
		{Name: "Ping", Returns: returns(parse.SimpleType{Type: "string"}), Directive: SwitchToMain},
		{Name: "Status", Returns: returns(observableOf(parse.SimpleType{Type: "string"})), Directive: HandleResultToIO},
	}

	plans, diagnostics := PlanService(s)
	a.Len(plans, 3)
	a.Equal(HandleResultToMain, plans[0].Directive)
	a.Equal(DoNotHandle, plans[1].Directive)
	a.Equal(SwitchToMain, plans[2].Directive)
	a.Len(diagnostics, 2)
	a.Equal("Ping", diagnostics[0].Method)
	a.Equal("Status", diagnostics[1].Method)
	a.Equal(
		"FooService.Status: scheduler directive HANDLE_RESULT_TO_IO cannot be applied to return shape OBSERVABLE_OF_OPAQUE, using DEFAULT",
		diagnostics[1].String(),
	)
}

func TestNewMethodDescriptor(t *testing.T) {
	a := assert.New(t)

	md, err := NewMethodDescriptor(parse.Method{
		Name: "Search",
		Comments: []string{
			` Search returns all matching users.`,
			` @Scheduler{"directive": "SWITCH_IO"}`,
		},
	})
	a.Nil(err)
	a.Equal(SwitchToIO, md.Directive)
	a.False(md.Deprecated)

	md, err = NewMethodDescriptor(parse.Method{
		Name: "Legacy",
		Comments: []string{
			` Legacy returns a user.`,
			``,
			` Deprecated: use Fetch.`,
			` @CloseScheduler{}`,
		},
	})
	a.Nil(err)
	a.Equal(DoNotHandle, md.Directive)
	a.True(md.Deprecated)
	a.Equal("Deprecated: use Fetch.", md.Deprecation)

	md, err = NewMethodDescriptor(parse.Method{Name: "Ping"})
	a.Nil(err)
	a.Equal(Default, md.Directive)

	_, err = NewMethodDescriptor(parse.Method{Name: "A", Comments: []string{`@Scheduler{"directive": "SOMETIMES"}`}})
	a.NotNil(err)
	_, err = NewMethodDescriptor(parse.Method{Name: "A", Comments: []string{`@Scheduler{"directive": 1}`}})
	a.NotNil(err)
	_, err = NewMethodDescriptor(parse.Method{Name: "A", Comments: []string{`@Scheduler{"directive": "SWITCH_TO_IO"} @CloseScheduler{}`}})
	a.NotNil(err)
}

func TestReturnShapeString(t *testing.T) {
	a := assert.New(t)

	a.Equal("NOT_OBSERVABLE", ReturnShape{}.String())
	a.Equal("OBSERVABLE_OF_OPAQUE", ReturnShape{Kind: ObservableOfOpaque}.String())
	a.Equal("OBSERVABLE_OF_ENVELOPE(model.User)", ReturnShape{Kind: ObservableOfEnvelope, Inner: userType}.String())
	a.Equal("OBSERVABLE_OF_ENVELOPE([]map[string]*model.User)", ReturnShape{
		Kind:  ObservableOfEnvelope,
		Inner: parse.ArrayType{Type: parse.MapType{KeyType: parse.SimpleType{Type: "string"}, ValueType: parse.StarType{Type: userType}}},
	}.String())
}
