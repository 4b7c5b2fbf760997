package userdetail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aeiou-exam/backend/srvcerror"
	"github.com/aeiou-exam/backend/userdetail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var srvcErr *srvcerror.Error
	require.True(t, errors.As(err, &srvcErr), "expected a service error, got %v", err)
	assert.Equal(t, code, srvcErr.ErrorCode())
}

func validParams() userdetail.DetailParams {
	return userdetail.DetailParams{
		Fullname:             "Asha Rao",
		Age:                  24,
		Gender:               "female",
		MotherTongue:         []string{"Kannada"},
		LanguagesKnown:       []string{"Kannada", "English"},
		HighestQualification: "B.Sc.",
		Section:              "A",
		Residence:            "Bengaluru",
	}
}

func TestCreateDetailOncePerUser(t *testing.T) {
	srvc := userdetail.NewDetailSrvc(userdetail.NewInMemRepo())

	created, err := srvc.CreateDetail(context.Background(), "user-1", validParams())
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "Asha Rao", created.Fullname)

	_, err = srvc.CreateDetail(context.Background(), "user-1", validParams())
	assertErrCode(t, err, userdetail.ErrCodeDetailExists)
}

func TestCreateDetailRequiredFields(t *testing.T) {
	srvc := userdetail.NewDetailSrvc(userdetail.NewInMemRepo())

	params := validParams()
	params.Residence = ""
	_, err := srvc.CreateDetail(context.Background(), "user-1", params)
	assertErrCode(t, err, userdetail.ErrCodeMissingField)
}

func TestUpdateDetail(t *testing.T) {
	srvc := userdetail.NewDetailSrvc(userdetail.NewInMemRepo())

	_, err := srvc.CreateDetail(context.Background(), "user-1", validParams())
	require.NoError(t, err)

	params := validParams()
	params.Residence = "Mysuru"
	updated, err := srvc.UpdateDetail(context.Background(), "user-1", params)
	require.NoError(t, err)
	assert.Equal(t, "Mysuru", updated.Residence)

	_, err = srvc.UpdateDetail(context.Background(), "user-2", validParams())
	assertErrCode(t, err, userdetail.ErrCodeDetailNotFound)
}

func TestGetDetailNotFound(t *testing.T) {
	srvc := userdetail.NewDetailSrvc(userdetail.NewInMemRepo())

	_, err := srvc.GetDetail(context.Background(), "nobody")
	assertErrCode(t, err, userdetail.ErrCodeDetailNotFound)

	found, err := srvc.FindDetail(context.Background(), "nobody")
	require.NoError(t, err, "FindDetail treats absence as a nil result")
	assert.Nil(t, found)
}

func TestListDetailsSearch(t *testing.T) {
	srvc := userdetail.NewDetailSrvc(userdetail.NewInMemRepo())

	_, err := srvc.CreateDetail(context.Background(), "user-1", validParams())
	require.NoError(t, err)

	other := validParams()
	other.Fullname = "Ravi Kumar"
	other.Residence = "Chennai"
	_, err = srvc.CreateDetail(context.Background(), "user-2", other)
	require.NoError(t, err)

	matches, err := srvc.ListDetails(context.Background(), "chennai")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "user-2", matches[0].UserID)

	all, err := srvc.ListDetails(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteDetail(t *testing.T) {
	srvc := userdetail.NewDetailSrvc(userdetail.NewInMemRepo())

	_, err := srvc.CreateDetail(context.Background(), "user-1", validParams())
	require.NoError(t, err)

	require.NoError(t, srvc.DeleteDetail(context.Background(), "user-1"))

	err = srvc.DeleteDetail(context.Background(), "user-1")
	assertErrCode(t, err, userdetail.ErrCodeDetailNotFound)
}
