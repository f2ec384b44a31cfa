package domain

// Assessment updates replace the whole composite and bump the version.
// They record no event; the stored event log only covers the lifecycle
// and activity mutations.

func (p *Patient) UpdateHousingCondition(condition *HousingCondition) {
	p.housingCondition = condition
	p.version++
}

func (p *Patient) UpdateSocioEconomicSituation(situation *SocioEconomicSituation) {
	p.socioEconomicSituation = situation
	p.version++
}

func (p *Patient) UpdateCommunitySupportNetwork(network *CommunitySupportNetwork) {
	p.communitySupportNetwork = network
	p.version++
}

func (p *Patient) UpdateSocialHealthSummary(summary *SocialHealthSummary) {
	p.socialHealthSummary = summary
	p.version++
}
