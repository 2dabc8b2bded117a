package pomomo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodo_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		completed bool
		wantErr   bool
	}{
		{name: "bool true", raw: `{"id":3,"title":"a","completed":true}`, completed: true},
		{name: "bool false", raw: `{"id":3,"title":"a","completed":false}`},
		{name: "one", raw: `{"id":3,"title":"a","completed":1}`, completed: true},
		{name: "zero", raw: `{"id":3,"title":"a","completed":0}`},
		{name: "null", raw: `{"id":3,"title":"a","completed":null}`},
		{name: "missing", raw: `{"id":3,"title":"a"}`},
		{name: "invalid", raw: `{"id":3,"title":"a","completed":"yes"}`, wantErr: true},
		{name: "out of range", raw: `{"id":3,"title":"a","completed":2}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var todo Todo
			err := json.Unmarshal([]byte(tc.raw), &todo)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Todo{ID: 3, Title: "a", Completed: tc.completed}, todo)
		})
	}
}

func TestTodoPatch_OmitsNilFields(t *testing.T) {
	b, err := json.Marshal(TodoPatch{Completed: FlagPtr(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":true}`, string(b))

	title := "rename"
	b, err = json.Marshal(TodoPatch{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"rename"}`, string(b))
}

func TestExistingTodoRecord_Todo(t *testing.T) {
	r := ExistingTodoRecord{
		ExistingRecord: NewExistingRecord[TodoID](7),
		TodoRecord:     TodoRecord{Title: "write", Completed: true},
	}

	assert.Equal(t, Todo{ID: 7, Title: "write", Completed: true}, r.Todo())
}
