package models

import "time"

// Member represents a person belonging to a group
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Group represents a set of people sharing expenses in one currency
type Group struct {
	ID           string   `json:"id"`
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Currency     string   `json:"currency"`
	CreationTime int64    `json:"creationTime"`
	Members      []Member `json:"members"`
}

// ExpenseSplit is one member's share of an expense
type ExpenseSplit struct {
	MemberID    string     `json:"memberId"`
	ShareAmount float64    `json:"shareAmount"`
	Settled     bool       `json:"settled"`
	SettledAt   *time.Time `json:"settledAt,omitempty"`
}

// ExpenseRecord represents a shared expense paid by one member and
// divided into shares
type ExpenseRecord struct {
	ID           string         `json:"id"`
	GroupID      string         `json:"groupId"`
	Description  string         `json:"description"`
	Amount       float64        `json:"amount"`
	PaidBy       string         `json:"paidBy"`
	Splits       []ExpenseSplit `json:"splits"`
	IsSettled    bool           `json:"isSettled"`
	CreationTime int64          `json:"creationTime"`
}

// PlannedTransfer is a proposed payment from one member to another,
// produced by the settlement planner
type PlannedTransfer struct {
	FromUserID string  `json:"from"`
	ToUserID   string  `json:"to"`
	Amount     float64 `json:"amount"`
}

// BalanceResult represents the net position of every group member
type BalanceResult struct {
	GroupID  string             `json:"groupId"`
	Balances map[string]float64 `json:"balances"`
}

// SettlementPlan is the result of a planning run: the transfers that
// clear the group's balances
type SettlementPlan struct {
	GroupID   string             `json:"groupId"`
	Transfers []PlannedTransfer  `json:"transfers"`
	Balances  map[string]float64 `json:"balances"`
}

// ComputeBalancesRequest request model
type ComputeBalancesRequest struct {
	GroupID string `json:"groupId" binding:"required"`
}

// PlanSettlementsRequest request model
type PlanSettlementsRequest struct {
	GroupID string `json:"groupId" binding:"required"`
}

// ExportGroupRequest request model
type ExportGroupRequest struct {
	GroupID string `json:"groupId" binding:"required"`
}
