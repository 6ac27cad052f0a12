package models

import "testing"

func TestDefaultWorkSchedule(t *testing.T) {
	w := DefaultWorkSchedule()
	if len(w) != 7 {
		t.Fatalf("got %d days", len(w))
	}
	if w["Saturday"] != (DayHours{Open: "10:00", Close: "15:00"}) {
		t.Errorf("Saturday = %+v", w["Saturday"])
	}
	if w["Sunday"].Open != Closed {
		t.Errorf("Sunday = %+v", w["Sunday"])
	}

	// Each call returns an independent map.
	w["Monday"] = DayHours{Open: Closed, Close: Closed}
	if DefaultWorkSchedule()["Monday"].Open != "09:00" {
		t.Error("default schedule was shared")
	}
}

func TestWorkScheduleValidate(t *testing.T) {
	cases := []struct {
		name  string
		sched WorkSchedule
		ok    bool
	}{
		{"default", DefaultWorkSchedule(), true},
		{"one day", WorkSchedule{"Friday": {Open: "08:00", Close: "12:00"}}, true},
		{"empty", WorkSchedule{}, false},
		{"unknown day", WorkSchedule{"Funday": {Open: "1", Close: "2"}}, false},
		{"missing close", WorkSchedule{"Monday": {Open: "09:00"}}, false},
	}
	for _, tc := range cases {
		if err := tc.sched.Validate(); (err == nil) != tc.ok {
			t.Errorf("%s: Validate() = %v", tc.name, err)
		}
	}
}

func TestWorkScheduleRoundTrip(t *testing.T) {
	in := WorkSchedule{"Tuesday": {Open: "07:30", Close: "19:00"}}
	v, err := in.Value()
	if err != nil {
		t.Fatal(err)
	}
	var out WorkSchedule
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatal(err)
	}
	if out["Tuesday"] != in["Tuesday"] {
		t.Errorf("scanned %+v", out)
	}
	if err := out.Scan(42); err == nil {
		t.Error("Scan(int) succeeded")
	}

	var form WorkSchedule
	if err := form.UnmarshalParam(`{"Monday":{"open":"09:00","close":"17:00"}}`); err != nil {
		t.Fatal(err)
	}
	if form["Monday"].Close != "17:00" {
		t.Errorf("form value = %+v", form)
	}
}

func TestRoundPrice(t *testing.T) {
	for in, want := range map[float64]float64{1.999: 2, 10.124: 10.12, 0: 0, 3.5: 3.5} {
		if got := RoundPrice(in); got != want {
			t.Errorf("RoundPrice(%v) = %v, want %v", in, got, want)
		}
	}
}
