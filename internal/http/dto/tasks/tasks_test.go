package tasks

import (
	"encoding/json"
	"testing"
)

// El PATCH de tareas distingue tres estados por campo: ausente (no tocar),
// null explícito (limpiar) y valor presente (setear).
func TestUpdateRequest_TriState(t *testing.T) {
	var absent UpdateRequest
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &absent); err != nil {
		t.Fatal(err)
	}
	if absent.AssignedTo.Set {
		t.Error("campo ausente no debe marcar Set")
	}

	var null UpdateRequest
	if err := json.Unmarshal([]byte(`{"assignedTo":null}`), &null); err != nil {
		t.Fatal(err)
	}
	if !null.AssignedTo.Set || null.AssignedTo.Value != nil {
		t.Errorf("null explícito: Set=%v Value=%v", null.AssignedTo.Set, null.AssignedTo.Value)
	}

	var set UpdateRequest
	if err := json.Unmarshal([]byte(`{"assignedTo":"acc-1","dueDate":null}`), &set); err != nil {
		t.Fatal(err)
	}
	if !set.AssignedTo.Set || set.AssignedTo.Value == nil || *set.AssignedTo.Value != "acc-1" {
		t.Errorf("valor presente: %+v", set.AssignedTo)
	}
	if !set.DueDate.Set || set.DueDate.Value != nil {
		t.Errorf("dueDate null: %+v", set.DueDate)
	}
}
