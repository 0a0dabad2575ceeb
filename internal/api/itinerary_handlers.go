package api

import (
	"net/http"

	"github.com/Ritpra93/wanderlust/internal/middleware"
	"github.com/Ritpra93/wanderlust/internal/service"
)

func (s *Server) handleAddItineraryItem(w http.ResponseWriter, r *http.Request) {
	var req createItineraryRequest
	if !s.decode(w, r, &req) {
		return
	}

	item, err := s.itinerary.Add(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"),
		service.ItineraryItemParams{
			Title:     req.Title,
			Notes:     req.Notes,
			Location:  req.Location,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListItinerary(w http.ResponseWriter, r *http.Request) {
	items, err := s.itinerary.List(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpdateItineraryItem(w http.ResponseWriter, r *http.Request) {
	var req updateItineraryRequest
	if !s.decode(w, r, &req) {
		return
	}

	item, err := s.itinerary.Update(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), r.PathValue("itemId"),
		service.UpdateItineraryParams{
			Title:           req.Title,
			Notes:           req.Notes,
			Location:        req.Location,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			ClientUpdatedAt: req.UpdatedAt,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItineraryItem(w http.ResponseWriter, r *http.Request) {
	err := s.itinerary.Delete(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), r.PathValue("itemId"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
