package duel

// played captures one side's interpreted action before anything is applied.
type played struct {
	card       *Card
	special    bool
	damage     int // dealt to the opponent
	shieldGain int
	heal       int
	curses     bool
}

// interpret turns a submission into a concrete action for p. Out-of-range
// indexes become a pass and ineligible special requests are downgraded,
// never errors: submissions come from best-effort AI or possibly stale
// clients.
func interpret(p *Participant, sub Submission, rules Rules) played {
	card, ok := p.PlayCard(sub.CardIndex)
	if !ok {
		return played{}
	}

	var out played
	out.card = &card

	if sub.UseSpecial && !p.SpecialUsed && card == SpecialCard(p.Character) {
		out.special = true
		p.SpecialUsed = true
	}

	bonus := 0
	if out.special {
		bonus = SpecialBonus(p.Character)
	}

	switch card {
	case Attack:
		out.damage = rules.AttackDamage + bonus
	case Defend:
		out.shieldGain = rules.ShieldGain + bonus
	case Heal:
		out.heal = rules.HealAmount + bonus
	case Curse:
		out.curses = true
	}
	return out
}

// resolveActions applies both submissions simultaneously. Each action is
// interpreted against the opponent's pre-resolution snapshot: shield gained
// this turn never absorbs this turn's attack, and healing races incoming
// damage rather than sequencing with it.
func resolveActions(a, b *Participant, subA, subB Submission, rules Rules) (ActionOutcome, ActionOutcome) {
	preA := *a
	preB := *b

	actA := interpret(a, subA, rules)
	actB := interpret(b, subB, rules)

	outA := applyOutcome(a, preA, actA, actB, rules)
	outB := applyOutcome(b, preB, actB, actA, rules)

	// A curse played this turn starts draining from the next resolution.
	if actB.curses {
		a.CurseTurns = rules.CurseTurns
		outA.CurseTurns = a.CurseTurns
	}
	if actA.curses {
		b.CurseTurns = rules.CurseTurns
		outB.CurseTurns = b.CurseTurns
	}

	a.checkConservation()
	b.checkConservation()
	return outA, outB
}

// applyOutcome mutates p with its own action (own) and the opponent's
// incoming action (in), both computed from p's pre-resolution state.
func applyOutcome(p *Participant, pre Participant, own, in played, rules Rules) ActionOutcome {
	absorbed := min(pre.Shield, in.damage)
	hpLoss := in.damage - absorbed

	p.Shield = pre.Shield - absorbed + own.shieldGain

	// Damage and healing are netted against the pre-resolution HP, then
	// clamped into [0, max].
	hp := pre.HP - hpLoss + own.heal
	hp = max(0, min(hp, p.maxHP))

	damaged := max(0, min(pre.HP-hpLoss, p.maxHP))
	healed := hp - damaged

	// An already-active curse drains before its counter ticks down.
	drain := 0
	if pre.CurseTurns > 0 {
		drain = min(rules.CurseDrain, hp)
		hp -= drain
		p.CurseTurns = pre.CurseTurns - 1
	}
	p.HP = hp

	return ActionOutcome{
		ParticipantID: p.ID,
		Card:          own.card,
		Special:       own.special,
		DamageDealt:   own.damage,
		DamageTaken:   hpLoss,
		Absorbed:      absorbed,
		Healed:        healed,
		ShieldChange:  p.Shield - pre.Shield,
		CurseDrain:    drain,
		HP:            p.HP,
		Shield:        p.Shield,
		CurseTurns:    p.CurseTurns,
	}
}
