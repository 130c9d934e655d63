package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/training-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestResolveRecipientsEditedUser(t *testing.T) {
	// An edited user short-circuits every other rule, even with an actor
	// and a target set present.
	res := ResolveRecipients(ResolveInput{
		Actor:             &domain.Account{ID: "admin", Username: "admin", IsSuperAdmin: true},
		Description:       "Admin edited your profile.",
		TargetUserIDs:     []string{"x", "y"},
		EditedUserID:      strPtr("edited-1"),
		EditedUserCompany: strPtr("c9"),
	})

	require.Len(t, res.Recipients, 1)
	assert.Equal(t, "edited-1", res.Recipients[0].AccountID)
	assert.Equal(t, "Admin edited your profile.", res.Recipients[0].Description)
	assert.Equal(t, "c9", *res.CompanyID)
}

func TestResolveRecipientsSystemActor(t *testing.T) {
	res := ResolveRecipients(ResolveInput{
		Description: "Nightly cleanup finished.",
		SuperAdmins: []StaffAccount{
			{AccountID: "sa-1"},
			{AccountID: "sa-2", CompanyID: strPtr("c1")},
		},
	})

	require.Len(t, res.Recipients, 2)
	for _, r := range res.Recipients {
		assert.Equal(t, SystemPrefix+"Nightly cleanup finished.", r.Description)
	}
	assert.Nil(t, res.CompanyID)
}

func TestResolveRecipientsOrdinaryActor(t *testing.T) {
	actor := &domain.Account{ID: "emp-1", Username: "jdoe"}
	res := ResolveRecipients(ResolveInput{
		Actor:        actor,
		ActorCompany: strPtr("c1"),
		Description:  "Created training session 'Intro'.",
		SuperAdmins: []StaffAccount{
			{AccountID: "sa-global"},             // unscoped, always included
			{AccountID: "sa-c1", CompanyID: strPtr("c1")}, // same company
			{AccountID: "sa-c2", CompanyID: strPtr("c2")}, // other company, excluded
		},
	})

	require.Len(t, res.Recipients, 2)
	ids := []string{res.Recipients[0].AccountID, res.Recipients[1].AccountID}
	assert.ElementsMatch(t, []string{"sa-global", "sa-c1"}, ids)
	for _, r := range res.Recipients {
		assert.Equal(t, "jdoe - Created training session 'Intro'.", r.Description)
	}
	assert.Equal(t, "c1", *res.CompanyID)
}

func TestResolveRecipientsOrdinaryActorWithoutCompany(t *testing.T) {
	// Without an actor company only unscoped super admins qualify.
	res := ResolveRecipients(ResolveInput{
		Actor:       &domain.Account{ID: "emp-1", Username: "jdoe"},
		Description: "Logged in successfully.",
		SuperAdmins: []StaffAccount{
			{AccountID: "sa-global"},
			{AccountID: "sa-c1", CompanyID: strPtr("c1")},
		},
	})

	require.Len(t, res.Recipients, 1)
	assert.Equal(t, "sa-global", res.Recipients[0].AccountID)
}

func TestResolveRecipientsSuperAdminActorDefaultsToSelf(t *testing.T) {
	actor := &domain.Account{ID: "sa-1", Username: "root", IsSuperAdmin: true}
	res := ResolveRecipients(ResolveInput{
		Actor:       actor,
		Description: "Logged in successfully.",
	})

	require.Len(t, res.Recipients, 1)
	assert.Equal(t, "sa-1", res.Recipients[0].AccountID)
	assert.Equal(t, "Logged in successfully.", res.Recipients[0].Description)
}

func TestResolveRecipientsSuperAdminActorTargets(t *testing.T) {
	actor := &domain.Account{ID: "sa-1", IsSuperAdmin: true}
	res := ResolveRecipients(ResolveInput{
		Actor:         actor,
		Description:   "Created department 'QA'.",
		TargetUserIDs: []string{"u1", "u2", "u1", "u3", "u2"},
		CompanyID:     strPtr("c1"),
	})

	// Duplicates collapse to one entry per account.
	require.Len(t, res.Recipients, 3)
	ids := make([]string, 0, 3)
	for _, r := range res.Recipients {
		ids = append(ids, r.AccountID)
	}
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, ids)
	assert.Equal(t, "c1", *res.CompanyID)
}

func TestResolveCompanyFallbackChain(t *testing.T) {
	explicit := strPtr("explicit")
	actorCo := strPtr("actor-co")
	editedCo := strPtr("edited-co")

	assert.Equal(t, explicit, ResolveRecipients(ResolveInput{
		CompanyID:         explicit,
		ActorCompany:      actorCo,
		EditedUserID:      strPtr("u"),
		EditedUserCompany: editedCo,
	}).CompanyID)

	assert.Equal(t, actorCo, ResolveRecipients(ResolveInput{
		ActorCompany:      actorCo,
		EditedUserID:      strPtr("u"),
		EditedUserCompany: editedCo,
	}).CompanyID)

	assert.Equal(t, editedCo, ResolveRecipients(ResolveInput{
		EditedUserID:      strPtr("u"),
		EditedUserCompany: editedCo,
	}).CompanyID)

	assert.Nil(t, ResolveRecipients(ResolveInput{
		EditedUserID: strPtr("u"),
	}).CompanyID)
}
