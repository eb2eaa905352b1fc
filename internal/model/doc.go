package model

// Package model defines domain data structures shared by the translator and
// the export dashboard: translation jobs with their stage enum, transcript
// segments, and the trade dataset rows rendered by the export views.
