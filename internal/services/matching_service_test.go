package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchingService() MatchingService {
	repos := newTestRepos()
	return NewMatchingService(repos.members, repos.companies)
}

func TestMatchesForIndividual(t *testing.T) {
	db := newTestDB(t)
	svc := newMatchingService()

	devID := seedProfession(t, db, "Software Development")
	designID := seedProfession(t, db, "Design")
	goID := seedSkill(t, db, "Go")
	figmaID := seedSkill(t, db, "Figma")

	me := seedIndividual(t, db, "ind-me0000", "Me", &devID, goID)
	sameProfession := seedIndividual(t, db, "ind-aaaaaa", "SameProf", &devID)
	sameSkill := seedIndividual(t, db, "ind-bbbbbb", "SameSkill", &designID, goID)
	both := seedIndividual(t, db, "ind-cccccc", "Both", &devID, goID)
	unrelated := seedIndividual(t, db, "ind-dddddd", "Unrelated", &designID, figmaID)

	offering := seedCompany(t, db, "com-aaaaaa", "DevShop", devID)
	seedCompany(t, db, "com-bbbbbb", "DesignShop", designID)

	results, err := svc.MatchesForIndividual(db, me.MemberID)
	require.NoError(t, err)

	ids := make([]string, 0, len(results.Members))
	for _, m := range results.Members {
		ids = append(ids, m.MemberID)
	}
	assert.ElementsMatch(t, []string{sameProfession.MemberID, sameSkill.MemberID, both.MemberID}, ids)
	assert.NotContains(t, ids, me.MemberID)
	assert.NotContains(t, ids, unrelated.MemberID)

	require.Len(t, results.Companies, 1)
	assert.Equal(t, offering.MemberID, results.Companies[0].MemberID)
}

func TestMatchesForIndividualWithoutProfession(t *testing.T) {
	db := newTestDB(t)
	svc := newMatchingService()

	goID := seedSkill(t, db, "Go")
	me := seedIndividual(t, db, "ind-me0000", "Me", nil, goID)
	peer := seedIndividual(t, db, "ind-aaaaaa", "Peer", nil, goID)

	results, err := svc.MatchesForIndividual(db, me.MemberID)
	require.NoError(t, err)

	require.Len(t, results.Members, 1)
	assert.Equal(t, peer.MemberID, results.Members[0].MemberID)
	assert.Empty(t, results.Companies)
}

func TestMatchesForCompany(t *testing.T) {
	db := newTestDB(t)
	svc := newMatchingService()

	devID := seedProfession(t, db, "Software Development")
	designID := seedProfession(t, db, "Design")

	me := seedCompany(t, db, "com-me0000", "MyShop", devID, designID)
	sharesOne := seedCompany(t, db, "com-aaaaaa", "DevShop", devID)
	sharesBoth := seedCompany(t, db, "com-bbbbbb", "FullShop", devID, designID)
	unrelatedProfessionID := seedProfession(t, db, "Accounting")
	seedCompany(t, db, "com-cccccc", "Books", unrelatedProfessionID)

	dev := seedIndividual(t, db, "ind-aaaaaa", "Dev", &devID)
	seedIndividual(t, db, "ind-bbbbbb", "Accountant", &unrelatedProfessionID)

	results, err := svc.MatchesForCompany(db, me.MemberID)
	require.NoError(t, err)

	require.Len(t, results.Members, 1)
	assert.Equal(t, dev.MemberID, results.Members[0].MemberID)

	ids := make([]string, 0, len(results.Companies))
	for _, c := range results.Companies {
		ids = append(ids, c.MemberID)
	}
	// Sharing two services still yields one entry.
	assert.ElementsMatch(t, []string{sharesOne.MemberID, sharesBoth.MemberID}, ids)
	assert.NotContains(t, ids, me.MemberID)
}
