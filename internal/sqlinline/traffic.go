package sqlinline

const QEnsureTrafficDaily = `--sql cac11b91-db7f-489f-bb03-fd485dc62bf1
create table if not exists traffic_daily (
    repo       text        not null,
    day        date        not null,
    views      integer     not null check (views >= 0),
    uniques    integer     check (uniques >= 0),
    updated_at timestamptz not null default now(),
    primary key (repo, day)
);
`

const QUpsertTrafficDaily = `--sql 1187c941-709e-4c9a-90f7-ef048d283e57
insert into traffic_daily (repo, day, views, uniques, updated_at)
values ($1::text, $2::date, $3::integer, $4::integer, now())
on conflict (repo, day) do update set
    views = excluded.views,
    uniques = excluded.uniques,
    updated_at = now();
`

const QSelectTrafficTotal = `--sql aa52abf9-d404-45dc-8dcb-6762724fafaa
select coalesce(sum(views), 0)::bigint
from traffic_daily
where repo = $1::text;
`
