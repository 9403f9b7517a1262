package vplan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandRows(t *testing.T) {
	rows, err := ExpandRows([][]string{
		{"10A", "1", "Math", "R1", "Mü", "Vertretung", ""},
		{"&nbsp;", "&nbsp;", "Phys", "R2", "Sch", "Entfall", ""},
		{"&nbsp;", "3", "Bio", "R3", "Kl", "Raum", ""},
		{"10B", "&nbsp;", "Chem", "R4", "We", "Vertretung", "&nbsp;"},
	})
	require.NoError(t, err)
	require.Equal(t, []Row{
		{Class: "10A", Lesson: "1", Subject: "Math", Room: "R1", Teachers: "Mü", Info: "Vertretung"},
		{Class: "10A", Lesson: "1", Subject: "Phys", Room: "R2", Teachers: "Sch", Info: "Entfall"},
		{Class: "10A", Lesson: "3", Subject: "Bio", Room: "R3", Teachers: "Kl", Info: "Raum"},
		// only class and lesson are inherited
		{Class: "10B", Lesson: "3", Subject: "Chem", Room: "R4", Teachers: "We", Info: "Vertretung", Notes: "&nbsp;"},
	}, rows)
}

func TestExpandRowsLeadingPlaceholder(t *testing.T) {
	rows, err := ExpandRows([][]string{
		{"&nbsp;", "&nbsp;", "Math", "R1", "Mü", "", ""},
	})
	require.NoError(t, err)
	require.Equal(t, "", rows[0].Class)
	require.Equal(t, "", rows[0].Lesson)
}

func TestExpandRowsShape(t *testing.T) {
	_, err := ExpandRows([][]string{
		{"10A", "1", "Math", "R1", "Mü", "", ""},
		{"10A", "2", "Phys", "R2"},
	})
	var shapeErr *RowShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Equal(t, 1, shapeErr.Row)
	require.Equal(t, "teachers", shapeErr.Column)
	require.Equal(t, 4, shapeErr.Have)

	_, err = ExpandRows([][]string{{}})
	require.ErrorAs(t, err, &shapeErr)
	require.Equal(t, "class", shapeErr.Column)
}

func TestExpandRowsExtraCells(t *testing.T) {
	rows, err := ExpandRows([][]string{
		{"10A", "1", "Math", "R1", "Mü", "x", "y", "ignored"},
	})
	require.NoError(t, err)
	require.Equal(t, "y", rows[0].Notes)
}
