package metrics

import "testing"

func TestBSAMosteller(t *testing.T) {
	cases := []struct {
		name     string
		heightCm float64
		weightKg float64
		value    float64
		status   string
	}{
		{"normal", 170, 65, 1.75, BSA_STATUS_NORMAL},
		{"small", 150, 40, 1.29, BSA_STATUS_SMALL},
		{"large", 190, 100, 2.3, BSA_STATUS_LARGE},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := BSAMosteller(c.heightCm, c.weightKg)
			if got == nil {
				t.Fatal("expected a BSA value")
			}
			if *got != c.value {
				t.Errorf("value: got %v, want %v", *got, c.value)
			}
			if status := BSAStatus(got); status != c.status {
				t.Errorf("status: got %s, want %s", status, c.status)
			}
		})
	}

	t.Run("missing inputs yield nil", func(t *testing.T) {
		if BSAMosteller(0, 65) != nil || BSAMosteller(170, 0) != nil {
			t.Error("non-positive inputs should return nil")
		}
		if BSAStatus(nil) != "" {
			t.Error("nil value should have empty status")
		}
	})
}

func TestBSADuBois(t *testing.T) {
	got := BSADuBois(170, 65)
	if got == nil {
		t.Fatal("expected a BSA value")
	}
	if *got != 1.75 {
		t.Errorf("unexpected value: %v", *got)
	}

	if BSADuBois(-1, 65) != nil {
		t.Error("non-positive inputs should return nil")
	}
}

func TestBSAStatusBounds(t *testing.T) {
	cases := []struct {
		value  float64
		status string
	}{
		{1.39, BSA_STATUS_SMALL},
		{1.4, BSA_STATUS_NORMAL},
		{1.9, BSA_STATUS_NORMAL},
		{1.91, BSA_STATUS_LARGE},
	}
	for _, c := range cases {
		v := c.value
		if got := BSAStatus(&v); got != c.status {
			t.Errorf("BSAStatus(%v) = %s, want %s", c.value, got, c.status)
		}
	}
}
