package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_DecodesArray(t *testing.T) {
	var w Workout
	err := json.Unmarshal([]byte(`{"id": 1, "name": "Legs", "exercises": ["squats", "lunges"]}`), &w)
	require.NoError(t, err)
	assert.Equal(t, StringList{"squats", "lunges"}, w.Exercises)
}

func TestStringList_DecodesDelimitedString(t *testing.T) {
	var w Workout
	err := json.Unmarshal([]byte(`{"id": 1, "name": "Legs", "exercises": "squats, lunges,"}`), &w)
	require.NoError(t, err)
	assert.Equal(t, StringList{"squats", "lunges"}, w.Exercises)
}

func TestStringList_NullIsEmpty(t *testing.T) {
	var team Team
	err := json.Unmarshal([]byte(`{"id": 5, "name": "Falcons", "members": null}`), &team)
	require.NoError(t, err)
	assert.NotNil(t, team.Members)
	assert.Empty(t, team.Members)
}

func TestStringList_RejectsNumbers(t *testing.T) {
	var team Team
	err := json.Unmarshal([]byte(`{"members": 42}`), &team)
	assert.Error(t, err)
}

func TestMembersPatch_EmptyEncodesAsArray(t *testing.T) {
	body, err := json.Marshal(MembersPatch{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"members": []}`, string(body))
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Peter Parker", User{Username: "spiderman", FirstName: "Peter", LastName: "Parker"}.FullName())
	assert.Equal(t, "Peter", User{Username: "spiderman", FirstName: "Peter"}.FullName())
	assert.Equal(t, "spiderman", User{Username: "spiderman", FirstName: "  ", LastName: ""}.FullName())
}

func TestNewUser_WireNames(t *testing.T) {
	body, err := json.Marshal(NewUser{Username: "bob", FirstName: "Bob", LastName: "Ross", Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bob","first_name":"Bob","last_name":"Ross","email":"b@example.com","password":"pw"}`, string(body))
}
