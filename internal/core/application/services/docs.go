// Package services contains application services that coordinate outbound
// side effects after domain state has been committed. The event distributor
// is the single owner of all transport and push-channel calls: command
// handlers report what happened, the distributor decides who gets told.
package services
