package game

import (
	"hanabi-reactor-server/action"
	"hanabi-reactor-server/identity"
)

// onDraw handles an observed Draw action (§4.4). The true identity is
// only known to a viewpoint when it wasn't drawn into that viewpoint's
// own hand (SuitIndex == -1 marks a card hidden from us, our own
// draws); the common viewpoint never uses a known Base at all, since
// common knowledge excludes what only some players could see.
func (g *Game) onDraw(pub action.Public) error {
	var known *identity.Identity
	if pub.SuitIndex >= 0 {
		id := identity.Identity{SuitIndex: pub.SuitIndex, Rank: pub.Rank}
		known = &id
	}

	g.State.ApplyDraw(pub.PlayerIndex, pub.Order, known)
	g.ConvOf(pub.Order)

	full := identity.FromSlice(g.State.Variant.AllIdentities())

	for _, p := range g.Players {
		if p.PlayerIndex == pub.PlayerIndex || known == nil {
			p.Draw(pub.Order, nil, full)
		} else {
			p.Draw(pub.Order, known, identity.Single(*known))
		}
	}
	g.Common.Draw(pub.Order, nil, full)

	g.runElim(false)
	return nil
}
