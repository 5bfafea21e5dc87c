package services

import "pizocrm/internal/models"

// LeadTransitions lists the moves the board allows without asking. Open stages
// move freely in both directions; cerrada and cancelada are terminal and any
// move out of them needs an explicit confirmation.
var LeadTransitions = map[models.LeadStatus]map[models.LeadStatus]bool{
	models.StatusForm:             openMoves(models.StatusForm),
	models.StatusPropuesta:        openMoves(models.StatusPropuesta),
	models.StatusEvaluacion:       openMoves(models.StatusEvaluacion),
	models.StatusComercializacion: openMoves(models.StatusComercializacion),
	models.StatusCongeladora:      openMoves(models.StatusCongeladora),
	models.StatusCerrada:          {},
	models.StatusCancelada:        {},
}

func openMoves(from models.LeadStatus) map[models.LeadStatus]bool {
	out := make(map[models.LeadStatus]bool, len(models.PipelineStatuses))
	for _, to := range models.PipelineStatuses {
		if to != from {
			out[to] = true
		}
	}
	return out
}

type transitionCheck int

const (
	transitionAllowed transitionCheck = iota
	transitionNeedsConfirmation
	transitionInvalid
)

func checkTransition(current, to models.LeadStatus) transitionCheck {
	if !to.Valid() {
		return transitionInvalid
	}
	if current == "" || current == to {
		return transitionAllowed
	}
	nexts, ok := LeadTransitions[current]
	if !ok {
		// unknown stored status; let the user put it back on the board
		return transitionAllowed
	}
	if nexts[to] {
		return transitionAllowed
	}
	return transitionNeedsConfirmation
}
