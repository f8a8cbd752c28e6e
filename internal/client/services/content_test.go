package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/memoradmin/internal/client/client"
	"github.com/dmitrijs2005/memoradmin/internal/client/models"
	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, entity string, gw client.Gateway) ContentService {
	t.Helper()
	d, err := models.Lookup(entity)
	require.NoError(t, err)
	return NewContentService(d, gw, nil)
}

func TestDelete_RelistsAndDecrementsTotal(t *testing.T) {
	gw := newMemGateway(25)
	svc := newService(t, "event", gw)
	ctx := context.Background()
	q := client.Query{Page: 2, PageSize: 10}

	before, err := svc.List(ctx, q)
	require.NoError(t, err)
	require.Equal(t, 25, before.Pagination.TotalItems)
	victim := before.Items[3].ID

	after, err := svc.Delete(ctx, victim, q)
	require.NoError(t, err)

	assert.Equal(t, before.Pagination.TotalItems-1, after.Pagination.TotalItems)
	for _, rec := range after.Items {
		assert.NotEqual(t, victim, rec.ID)
	}
	assert.Equal(t, []string{"list", "delete", "list"}, gw.calls)
}

func TestSoftDelete_RelistHidesFlaggedRow(t *testing.T) {
	gw := newMemGateway(12)
	svc := newService(t, "tribute", gw)
	ctx := context.Background()
	q := client.Query{Page: 1, PageSize: 10}

	before, err := svc.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, before.Items, 10)
	victim := before.Items[0].ID

	after, err := svc.Delete(ctx, victim, q)
	require.NoError(t, err)

	for _, rec := range after.Items {
		assert.NotEqual(t, victim, rec.ID)
	}
	assert.Len(t, after.Items, 9)
	assert.Equal(t, []string{"list", "delete", "list"}, gw.calls)

	again, err := svc.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, again.Items, 9, "plain list hides the flagged row too")
}

func TestCreate_InvalidFormNeverReachesGateway(t *testing.T) {
	gw := newMemGateway(3)
	svc := newService(t, "package", gw)
	d := svc.Descriptor()

	form := models.NewForm(d)
	form.SetText("title", ml.EN, "Gold")
	form.Attributes["price"] = "100"
	form.SetList("descriptions", ml.EN, []string{"a", "b", "c"})
	form.SetList("descriptions", ml.TA, []string{"a", "b"})
	form.SetList("descriptions", ml.SI, []string{"a", "b", "c"})

	_, err := svc.Create(context.Background(), form, client.Query{Page: 1, PageSize: 10})

	var pe *ml.ParityError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, [3]int{3, 2, 3}, pe.Counts())
	assert.Empty(t, gw.calls)
}

func TestUpdate_RejectsUnsupportedAttachment(t *testing.T) {
	gw := newMemGateway(1)
	svc := newService(t, "quote", gw)

	form := models.NewForm(svc.Descriptor())
	form.SetText("quote", ml.EN, "Always")
	form.Attachments = []models.Attachment{{Field: "image", Path: "/tmp/x.jpg"}}

	_, err := svc.Update(context.Background(), "r01", form, client.Query{Page: 1, PageSize: 10})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "image", verr.Problems[0].Field)
	assert.Empty(t, gw.calls)
}

func TestCreateAndUpdate_ReturnRefreshedPage(t *testing.T) {
	gw := newMemGateway(0)
	svc := newService(t, "quote", gw)
	ctx := context.Background()
	q := client.Query{Page: 1, PageSize: 10}

	form := models.NewForm(svc.Descriptor())
	form.SetText("quote", ml.EN, "First")
	page, err := svc.Create(ctx, form, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	id := page.Items[0].ID
	assert.Equal(t, "First", page.Items[0].Display("quote", ml.EN))

	edit := models.FormFromRecord(svc.Descriptor(), page.Items[0])
	edit.SetText("quote", ml.TA, "முதல்")
	page, err = svc.Update(ctx, id, edit, q)
	require.NoError(t, err)
	assert.Equal(t, "முதல்", page.Items[0].Display("quote", ml.TA))
	assert.Equal(t, []string{"create", "list", "update", "list"}, gw.calls)
}

func TestMutationFailure_NoRelist(t *testing.T) {
	gw := newMemGateway(2)
	gw.mutateErr = &client.MutationError{Op: "delete", Entity: "event", Status: 500, Message: "boom"}
	svc := newService(t, "event", gw)

	page, err := svc.Delete(context.Background(), "r01", client.Query{Page: 1, PageSize: 10})
	assert.Nil(t, page)
	var me *client.MutationError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "boom", me.Notice())
	assert.Equal(t, []string{"delete"}, gw.calls)
}

func TestMutationSucceeded_RelistFailed(t *testing.T) {
	gw := newMemGateway(2)
	svc := newService(t, "event", gw)
	gw.listErr = &client.FetchError{Entity: "event", Err: client.ErrUnavailable}

	page, err := svc.Delete(context.Background(), "r01", client.Query{Page: 1, PageSize: 10})
	assert.Nil(t, page)
	var fe *client.FetchError
	require.ErrorAs(t, err, &fe)
	assert.True(t, errors.Is(err, client.ErrUnavailable))
	assert.Len(t, gw.records, 1)
}
